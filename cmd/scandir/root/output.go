package root

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gbansaghi/scandir"
	"github.com/gbansaghi/scandir/internal/config"
)

// entryView is the serialized form of an entry record.
type entryView struct {
	Name   string `json:"name" yaml:"name"`
	Serial uint64 `json:"serial" yaml:"serial"`
	Type   string `json:"type" yaml:"type"`
	Offset int64  `json:"offset,omitempty" yaml:"offset,omitempty"`
	RecLen uint16 `json:"reclen,omitempty" yaml:"reclen,omitempty"`
}

func writeNames(w io.Writer, format string, names []string) error {
	if names == nil {
		names = []string{}
	}

	return write(w, format, names, func() error {
		for _, name := range names {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
		}

		return nil
	})
}

func writeEntries(w io.Writer, format string, entries []scandir.Entry) error {
	views := make([]entryView, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		views = append(views, entryView{
			Name:   e.Name(),
			Serial: e.Serial(),
			Type:   e.Type().String(),
			Offset: e.Offset(),
			RecLen: e.RecLen(),
		})
	}

	return write(w, format, views, func() error {
		for _, v := range views {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", v.Serial, v.Type, v.Name); err != nil {
				return err
			}
		}

		return nil
	})
}

func writeSerials(w io.Writer, format string, serials []uint64) error {
	if serials == nil {
		serials = []uint64{}
	}

	return write(w, format, serials, func() error {
		for _, s := range serials {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}

		return nil
	})
}

// write encodes v as JSON or YAML, or calls text for the text format.
func write(w io.Writer, format string, v any, text func() error) error {
	switch strings.ToLower(format) {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	default:
		return text()
	}
}
