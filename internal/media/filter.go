package media

import (
	"fmt"
	"strings"

	"github.com/divVerent/midimontage/internal/timeline"
)

const (
	frameRate  = 30
	sampleRate = 48000
)

// Number of inputs before the first clip: the background video and the silent audio bed.
const fixedInputs = 2

func seconds(t float64) string {
	return fmt.Sprintf("%.3f", t)
}

// videoChain returns the filters placing clip c, read from the stream src, on its lane.
func videoChain(src string, c timeline.Clip, label string) string {
	w, h := c.Rect.Dx(), c.Rect.Dy()
	filters := []string{
		fmt.Sprintf("trim=duration=%s", seconds(c.Trim)),
		fmt.Sprintf("setpts=PTS-STARTPTS+%s/TB", seconds(c.Start)),
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", w, h),
		fmt.Sprintf("crop=%d:%d", w, h),
		"format=yuva420p",
	}
	if c.Fade > 0 {
		filters = append(filters,
			fmt.Sprintf("fade=t=in:st=%s:d=%s:alpha=1", seconds(c.Start), seconds(c.Fade)),
			fmt.Sprintf("fade=t=out:st=%s:d=%s:alpha=1", seconds(c.End()-c.Fade), seconds(c.Fade)))
	}
	return fmt.Sprintf("[%s]%s[%s]", src, strings.Join(filters, ","), label)
}

// audioChain returns the filters delaying and shaping the audio of clip c.
func audioChain(src string, c timeline.Clip, label string) string {
	filters := []string{
		fmt.Sprintf("atrim=duration=%s", seconds(c.Trim)),
		"asetpts=PTS-STARTPTS",
	}
	if c.Fade > 0 {
		filters = append(filters,
			fmt.Sprintf("afade=t=in:st=0:d=%s", seconds(c.Fade)),
			fmt.Sprintf("afade=t=out:st=%s:d=%s", seconds(c.Trim-c.Fade), seconds(c.Fade)))
	}
	filters = append(filters,
		fmt.Sprintf("volume=%.4f", c.Gain),
		fmt.Sprintf("adelay=%d:all=1", int64(c.Start*1000+0.5)))
	return fmt.Sprintf("[%s]%s[%s]", src, strings.Join(filters, ","), label)
}

// sources lists each distinct clip path once, in order of first use,
// and the number of clips using it.
func sources(comp *timeline.Composition) (paths []string, uses map[string]int) {
	uses = map[string]int{}
	for _, c := range comp.Clips {
		if uses[c.Path] == 0 {
			paths = append(paths, c.Path)
		}
		uses[c.Path]++
	}
	return paths, uses
}

// fanOut returns the filters splitting the streams of input in into n copies each,
// and the labels of the copies. With n == 1, the input streams are used directly.
func fanOut(in, n int) (parts, video, audio []string) {
	if n == 1 {
		return nil, []string{fmt.Sprintf("%d:v", in)}, []string{fmt.Sprintf("%d:a", in)}
	}
	var vOut, aOut string
	for k := 0; k < n; k++ {
		v := fmt.Sprintf("i%dv%d", in, k)
		a := fmt.Sprintf("i%da%d", in, k)
		video = append(video, v)
		audio = append(audio, a)
		vOut += "[" + v + "]"
		aOut += "[" + a + "]"
	}
	parts = []string{
		fmt.Sprintf("[%d:v]split=%d%s", in, n, vOut),
		fmt.Sprintf("[%d:a]asplit=%d%s", in, n, aOut),
	}
	return parts, video, audio
}

// FilterGraph returns the ffmpeg filter graph rendering comp. Outputs are labeled vout and aout.
//
// Each distinct clip file is one input, see Args; clips sharing a file get
// their own copy of its streams.
func FilterGraph(comp *timeline.Composition) string {
	var parts []string
	paths, uses := sources(comp)
	video := map[string][]string{}
	audio := map[string][]string{}
	for j, p := range paths {
		split, v, a := fanOut(fixedInputs+j, uses[p])
		parts = append(parts, split...)
		video[p], audio[p] = v, a
	}
	prev := "0:v"
	mix := []string{"[1:a]"}
	for i, c := range comp.Clips {
		src := video[c.Path][0]
		video[c.Path] = video[c.Path][1:]
		asrc := audio[c.Path][0]
		audio[c.Path] = audio[c.Path][1:]
		v := fmt.Sprintf("v%d", i)
		a := fmt.Sprintf("a%d", i)
		parts = append(parts, videoChain(src, c, v), audioChain(asrc, c, a))
		out := fmt.Sprintf("o%d", i)
		if i == len(comp.Clips)-1 {
			out = "vout"
		}
		parts = append(parts, fmt.Sprintf("[%s][%s]overlay=x=%d:y=%d:eof_action=pass[%s]", prev, v, c.Rect.Min.X, c.Rect.Min.Y, out))
		prev = out
		mix = append(mix, "["+a+"]")
	}
	if len(comp.Clips) == 0 {
		parts = append(parts, "[0:v]null[vout]")
	}
	parts = append(parts, fmt.Sprintf("%samix=inputs=%d:duration=first:normalize=0[aout]", strings.Join(mix, ""), len(mix)))
	return strings.Join(parts, ";")
}

// Args returns the ffmpeg command line rendering comp.
func Args(comp *timeline.Composition) []string {
	bg := comp.Background
	args := []string{
		"-y", "-hide_banner", "-nostats", "-progress", "pipe:1",
		"-f", "lavfi", "-i", fmt.Sprintf("color=c=0x%02x%02x%02x:s=%dx%d:r=%d:d=%s", bg.R, bg.G, bg.B, comp.Width, comp.Height, frameRate, seconds(comp.Duration)),
		"-f", "lavfi", "-i", fmt.Sprintf("anullsrc=r=%d:cl=stereo:d=%s", sampleRate, seconds(comp.Duration)),
	}
	paths, _ := sources(comp)
	for _, p := range paths {
		args = append(args, "-i", p)
	}
	return append(args,
		"-filter_complex", FilterGraph(comp),
		"-map", "[vout]", "-map", "[aout]",
		"-t", seconds(comp.Duration),
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		"-c:a", "aac",
		comp.Output)
}
