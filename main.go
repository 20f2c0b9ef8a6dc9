package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/divVerent/midimontage/internal/clips"
	"github.com/divVerent/midimontage/internal/file"
	"github.com/divVerent/midimontage/internal/media"
	"github.com/divVerent/midimontage/internal/processor"
	"github.com/divVerent/midimontage/internal/progress"
	"github.com/divVerent/midimontage/internal/timeline"
	"github.com/divVerent/midimontage/internal/version"
)

var (
	c            = flag.String("c", "midimontage.yml", "config file name (YAML); skipped if missing")
	i            = flag.String("i", "", "input file name (YAML)")
	midiFile     = flag.String("midi", "", "MIDI file to render, if no input YAML is used")
	track        = flag.String("track", "", "name or index of the track to render; if empty, list the tracks")
	o            = flag.String("o", "", "output file name")
	clipDir      = flag.String("clip_dir", "", "directory containing the note clips")
	start        = flag.Float64("start", 0, "start of the part to render in seconds")
	end          = flag.Float64("end", 0, "end of the part to render in seconds (0 means until the end)")
	addChecksum  = flag.Bool("add_checksum", false, "automatically add checksum to the input YAML")
	dryRun       = flag.Bool("dry_run", false, "print the ffmpeg command line instead of running it")
	verbose      = flag.Bool("v", false, "log the plan")
	printVersion = flag.Bool("version", false, "print the version and exit")
)

func loadConfig(fsys fs.FS) (*processor.Config, error) {
	config, err := file.ReadConfig(fsys, *c)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Config %v not found, using defaults.", *c)
		return processor.DefaultConfig(), nil
	}
	return config, err
}

func loadOptions(fsys fs.FS) (*processor.Options, error) {
	var options *processor.Options
	if *i != "" {
		var err error
		options, err = file.ReadOptions(fsys, *i)
		if err != nil {
			return nil, err
		}
	} else {
		if *midiFile == "" {
			return nil, errors.New("either -i or -midi must be given")
		}
		options = &processor.Options{}
	}
	if *midiFile != "" {
		options.InputFile = *midiFile
	}
	if *track != "" {
		options.Track = *track
	}
	if *o != "" {
		options.Output = *o
	}
	if *start != 0 {
		options.Window.Start = *start
	}
	if *end != 0 {
		options.Window.End = *end
	}
	if *clipDir != "" {
		if options.Config == nil {
			options.Config = &processor.Config{}
		}
		options.Config.ClipDir = *clipDir
	}
	if options.Output == "" {
		options.Output = strings.TrimSuffix(options.InputFile, filepath.Ext(options.InputFile)) + ".mp4"
	}
	return options, nil
}

func listTracks(song *processor.Song) {
	for _, t := range processor.ListTracks(song) {
		log.Printf("Track %d: %q (%d notes).", t.Index, t.Name, t.Notes)
	}
	log.Printf("Pass -track to render one of them.")
}

func Main() error {
	if *printVersion {
		fmt.Println(version.Version())
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %v", err)
	}
	fsys := os.DirFS(cwd)

	config, err := loadConfig(fsys)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	options, err := loadOptions(fsys)
	if err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}

	wantChecksum := options.InputFileSHA256 == ""

	song, result, err := file.Process(fsys, config, options)
	if err != nil {
		if song != nil && errors.Is(err, processor.ErrTrackNotFound) {
			listTracks(song)
		}
		return err
	}
	if result == nil {
		listTracks(song)
		return nil
	}
	if *verbose {
		processor.DumpPlan("plan", result)
	}

	effective := processor.EffectiveConfig(config, options)
	settings, err := timeline.SettingsFromConfig(effective, options.Output)
	if err != nil {
		return err
	}
	home, _ := effective.Octaves()
	resolver, err := clips.Open(effective.ClipDir, home, effective.Extensions)
	if err != nil {
		return err
	}
	ff := media.New(effective.FFmpeg, effective.FFprobe)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bar := progress.New(os.Stderr, "placing")
	comp, warnings, err := timeline.Emit(ctx, result, resolver, ff, settings, bar.Update)
	bar.Done()
	if err != nil {
		return fmt.Errorf("failed to place clips: %w", err)
	}
	for _, w := range warnings {
		log.Printf("Skipping unplayable note %v.", w)
	}
	log.Printf("Placed %d of %d notes, %.1f seconds.", len(comp.Clips), len(result.Records), comp.Duration)

	if *dryRun {
		fmt.Println(strings.Join(append([]string{effective.FFmpeg}, media.Args(comp)...), " "))
	} else {
		bar = progress.New(os.Stderr, "rendering")
		err = ff.Render(ctx, comp, bar.Update)
		bar.Done()
		if err != nil {
			return fmt.Errorf("failed to render %v: %w", options.Output, err)
		}
		log.Printf("Wrote %v.", options.Output)
	}

	if *addChecksum && wantChecksum && *i != "" && *midiFile == "" {
		err = file.WriteChecksum(fsys, *i, options.InputFileSHA256)
		if err != nil {
			return fmt.Errorf("failed to write %v: %w", *i, err)
		}
	}

	return nil
}

func main() {
	flag.Parse()
	err := Main()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
