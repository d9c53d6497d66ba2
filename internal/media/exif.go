package media

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ErrNoMetadata indicates the file carries no usable capture metadata.
var ErrNoMetadata = errors.New("no capture metadata")

const exifTimeLayout = "2006:01:02 15:04:05"

// Metadata is the capture information read from a media file. Taken is a
// naive wall-clock value; a zero Taken means the file had no timestamp.
type Metadata struct {
	Taken time.Time
	Make  string
	Model string
}

// HasDevice reports whether both make and model are known.
func (m Metadata) HasDevice() bool {
	return m.Make != "" && m.Model != ""
}

// EXIFReader reads capture metadata from EXIF blocks.
type EXIFReader struct{}

// NewEXIFReader returns a reader for JPEG/TIFF-style EXIF data.
func NewEXIFReader() EXIFReader {
	return EXIFReader{}
}

// Read decodes the EXIF block of path. Files without EXIF, or whose EXIF
// holds neither a timestamp nor a device, return ErrNoMetadata.
func (EXIFReader) Read(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		if x == nil || exif.IsCriticalError(err) {
			return Metadata{}, fmt.Errorf("%w: %s", ErrNoMetadata, path)
		}
	}

	var meta Metadata
	if raw := tagString(x, exif.DateTimeOriginal); raw != "" {
		if t, err := time.ParseInLocation(exifTimeLayout, raw, time.UTC); err == nil {
			meta.Taken = t
		}
	}
	if meta.Taken.IsZero() {
		if raw := tagString(x, exif.DateTime); raw != "" {
			if t, err := time.ParseInLocation(exifTimeLayout, raw, time.UTC); err == nil {
				meta.Taken = t
			}
		}
	}
	meta.Make = tagString(x, exif.Make)
	meta.Model = tagString(x, exif.Model)

	if meta.Taken.IsZero() && !meta.HasDevice() {
		return Metadata{}, fmt.Errorf("%w: %s", ErrNoMetadata, path)
	}
	return meta, nil
}

func tagString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	value, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(value, "\x00"))
}
