package file

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"filippo.io/age"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/divVerent/midimontage/internal/processor"
)

// ReadSong reads and parses the input file of the options.
//
// The checksum of the file as stored is verified against the options, if
// set there, and recorded in the options otherwise. Files ending in .age
// are decrypted using the configured password.
func ReadSong(fsys fs.FS, config *processor.Config, options *processor.Options) (*processor.Song, error) {
	fsys, name := resolve(fsys, options.InputFile)
	inBytes, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("could not read %v: %w", options.InputFile, err)
	}

	sum := fmt.Sprintf("%x", sha256.Sum256(inBytes))
	if options.InputFileSHA256 != "" && options.InputFileSHA256 != sum {
		return nil, fmt.Errorf("mismatching checksum of %v: got %v, want %v", options.InputFile, sum, options.InputFileSHA256)
	}
	options.InputFileSHA256 = sum

	if strings.HasSuffix(options.InputFile, ".age") {
		inBytes, err = decrypt(inBytes, config.Password)
		if err != nil {
			return nil, fmt.Errorf("could not decrypt %v: %w", options.InputFile, err)
		}
	}

	mid, err := smf.ReadFrom(bytes.NewReader(inBytes))
	if err != nil {
		return nil, fmt.Errorf("could not parse %v: %w", options.InputFile, err)
	}
	song, err := processor.FromSMF(mid)
	if err != nil {
		return nil, fmt.Errorf("could not convert %v: %w", options.InputFile, err)
	}
	return song, nil
}

func decrypt(ciphertext []byte, pw string) ([]byte, error) {
	if pw == "" {
		return nil, fmt.Errorf("no password configured")
	}
	id, err := age.NewScryptIdentity(pw)
	if err != nil {
		return nil, fmt.Errorf("could not build scrypt identity: %w", err)
	}
	plaintextReader, err := age.Decrypt(bytes.NewReader(ciphertext), id)
	if err != nil {
		return nil, fmt.Errorf("could not start decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(plaintextReader)
	if err != nil {
		return nil, fmt.Errorf("could not finish decrypting: %w", err)
	}
	return plaintext, nil
}

// Process reads the input of the options and computes the annotated plan.
// It returns the song as well, e.g. for listing its tracks.
func Process(fsys fs.FS, config *processor.Config, options *processor.Options) (*processor.Song, *processor.Result, error) {
	effective := processor.EffectiveConfig(config, options)
	if err := effective.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	song, err := ReadSong(fsys, effective, options)
	if err != nil {
		return nil, nil, err
	}
	if options.Track == "" {
		return song, nil, nil
	}
	result, err := processor.Process(song, effective, options)
	if err != nil {
		return song, nil, fmt.Errorf("failed to process: %w", err)
	}
	return song, result, nil
}
