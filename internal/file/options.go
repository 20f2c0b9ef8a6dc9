package file

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/divVerent/midimontage/internal/processor"
)

func readOptions(fsys fs.FS, optionsFile string) (*processor.Options, error) {
	fsys, name := resolve(fsys, optionsFile)
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open %v: %w", optionsFile, err)
	}
	defer f.Close()
	var options processor.Options
	err = yaml.NewDecoder(f).Decode(&options)
	if err != nil {
		return nil, fmt.Errorf("could not decode %v: %w", optionsFile, err)
	}
	return &options, nil
}

// ReadOptions reads the options of one song.
// The input and output file names are taken relative to the options file.
func ReadOptions(fsys fs.FS, optionsFile string) (*processor.Options, error) {
	options, err := readOptions(fsys, optionsFile)
	if err != nil {
		return nil, err
	}
	options.InputFile = relativeTo(optionsFile, options.InputFile)
	options.Output = relativeTo(optionsFile, options.Output)
	return options, nil
}

// WriteChecksum records the input file checksum in the options file.
// All other fields are written back as they were read.
func WriteChecksum(fsys fs.FS, optionsFile, sum string) error {
	options, err := readOptions(fsys, optionsFile)
	if err != nil {
		return err
	}
	if options.InputFileSHA256 == sum {
		return nil
	}
	options.InputFileSHA256 = sum
	return writeOptions(optionsFile, options)
}

func writeOptions(optionsFile string, options *processor.Options) (err error) {
	f, err := os.Create(optionsFile)
	if err != nil {
		return fmt.Errorf("could not recreate %v: %w", optionsFile, err)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2) // Match yq.
	return enc.Encode(options)
}
