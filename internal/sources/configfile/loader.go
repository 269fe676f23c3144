package configfile

import (
	"fmt"
	"os"

	"github.com/samber/oops"

	"github.com/MrSnakeDoc/homey/internal/domain"
)

// BootError reports that the configuration file could not be loaded at startup.
// There is no default document to fall back to, so it is fatal.
type BootError struct {
	Path string
	Err  error
}

func (e *BootError) Error() string {
	return fmt.Sprintf("cannot load config %s: %v", e.Path, e.Err)
}

func (e *BootError) Unwrap() error { return e.Err }

// Loader reads and parses the dashboard configuration file
type Loader struct {
	filePath string
}

// NewLoader creates a new config file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the configuration file.
// Any failure is returned as a *BootError.
func (l *Loader) Load() (domain.Document, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return domain.Document{}, &BootError{
			Path: l.filePath,
			Err:  oops.In("configfile").With("path", l.filePath).Wrapf(err, "read config file"),
		}
	}

	doc, err := domain.Parse(data)
	if err != nil {
		return domain.Document{}, &BootError{
			Path: l.filePath,
			Err:  oops.In("configfile").With("path", l.filePath).Wrapf(err, "parse config file"),
		}
	}

	return doc, nil
}
