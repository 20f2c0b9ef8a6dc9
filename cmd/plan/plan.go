package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/divVerent/midimontage/internal/clips"
	"github.com/divVerent/midimontage/internal/file"
	"github.com/divVerent/midimontage/internal/processor"
)

var (
	c       = flag.String("c", "midimontage.yml", "config file name (YAML)")
	i       = flag.String("i", "", "input file name (YAML)")
	track   = flag.String("track", "", "name or index of the track; if empty, list the tracks")
	asYAML  = flag.Bool("yaml", false, "print the plan as YAML")
	noColor = flag.Bool("no_color", false, "print tables without colors")
	check   = flag.Bool("check_clips", false, "also list the clip used for each note of the track")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	groupStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("10"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	missingStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("9"))
)

type planEntry struct {
	processor.PlanRecord `yaml:",inline"`
	Layout               processor.LayoutAnnotation `yaml:"layout"`
}

type planDoc struct {
	Track     int         `yaml:"track"`
	TrackName string      `yaml:"track_name"`
	Theta     int64       `yaml:"theta"`
	Notes     []planEntry `yaml:"notes"`
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func printTracks(song *processor.Song) {
	t := newTable("#", "Name", "Notes").StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	for _, info := range processor.ListTracks(song) {
		t.Row(fmt.Sprint(info.Index), info.Name, fmt.Sprint(info.Notes))
	}
	fmt.Println(t)
}

func printPlan(r *processor.Result) {
	t := newTable("Tick", "Time", "Note", "Duration", "Velocity", "Lane").StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row >= 0 && row < len(r.Layout) && !r.Layout[row].Solo():
			return groupStyle
		}
		return cellStyle
	})
	for i, rec := range r.Records {
		duration := "sustain"
		if !rec.Sustained() {
			duration = fmt.Sprintf("%.4fs", rec.Duration)
		}
		lane := "solo"
		if l := r.Layout[i]; !l.Solo() {
			lane = fmt.Sprintf("%d/%d", l.Lane+1, l.GroupSize)
		}
		t.Row(fmt.Sprint(rec.StartTick), fmt.Sprintf("%.4fs", rec.StartSeconds), rec.Name().String(), duration, fmt.Sprint(rec.Velocity), lane)
	}
	fmt.Println(t)
}

func printClips(song *processor.Song, r *processor.Result, config *processor.Config) error {
	home, shift := config.Octaves()
	resolver, err := clips.Open(config.ClipDir, home, config.Extensions)
	if err != nil {
		return err
	}
	missing := map[int]bool{}
	var rows [][]string
	for _, n := range processor.UsedNotes(song.Tracks[r.Track]) {
		shifted := n.Shift(shift)
		path, found := resolver.ResolveName(shifted)
		if !found {
			missing[len(rows)] = true
			path = "missing"
		}
		rows = append(rows, []string{n.String(), shifted.String(), path})
	}
	t := newTable("Note", "Clip note", "Clip").Rows(rows...).StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case missing[row]:
			return missingStyle
		}
		return cellStyle
	})
	fmt.Println(t)
	return nil
}

func printYAML(r *processor.Result) error {
	doc := planDoc{
		Track:     r.Track,
		TrackName: r.TrackName,
		Theta:     r.Theta,
	}
	for i, rec := range r.Records {
		doc.Notes = append(doc.Notes, planEntry{PlanRecord: rec, Layout: r.Layout[i]})
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(doc)
}

func Main() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %v", err)
	}
	fsys := os.DirFS(cwd)

	config, err := file.ReadConfig(fsys, *c)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	options, err := file.ReadOptions(fsys, *i)
	if err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}
	if *track != "" {
		options.Track = *track
	}

	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	song, result, err := file.Process(fsys, config, options)
	if err != nil {
		return err
	}
	if result == nil {
		printTracks(song)
		return nil
	}
	if *asYAML {
		return printYAML(result)
	}
	printPlan(result)
	if *check {
		return printClips(song, result, processor.EffectiveConfig(config, options))
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
