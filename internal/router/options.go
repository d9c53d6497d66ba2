package router

import (
	"fmt"
	"strings"

	"eventsort/internal/config"
	"eventsort/internal/signature"
)

// Options are the per-batch routing policies.
type Options struct {
	// InSignature is config.InSignatureName, InSignatureEXIF, or
	// InSignatureNameEXIF.
	InSignature      string
	Output           signature.Output
	ProcessUnmatched bool
	// ProcessSameName overwrites an existing destination file.
	ProcessSameName bool
	RequireArtist   bool
	Recursive       bool
	Copy            bool
	// Extensions is the lowercase allow-list including the dot. Empty
	// accepts every file.
	Extensions      []string
	CollisionPolicy string
	// DryRun computes destinations without touching the filesystem.
	DryRun bool
}

// OptionsFromConfig builds Options from the sorting section.
func OptionsFromConfig(s config.Sorting) (Options, error) {
	out, ok := signature.LookupOutput(s.OutSignature)
	if !ok {
		return Options{}, fmt.Errorf("unknown output signature %q (expected one of %s)",
			s.OutSignature, strings.Join(signature.OutputNames(), ", "))
	}
	exts := make([]string, 0, len(s.Extensions))
	for _, ext := range s.Extensions {
		exts = append(exts, strings.ToLower(ext))
	}
	return Options{
		InSignature:      s.InSignature,
		Output:           out,
		ProcessUnmatched: s.ProcessUnmatched,
		ProcessSameName:  s.ProcessSameName,
		RequireArtist:    s.RequireArtist,
		Recursive:        s.Recursive,
		Copy:             s.Copy,
		Extensions:       exts,
		CollisionPolicy:  s.CollisionPolicy,
	}, nil
}

func (o Options) usesName() bool {
	return o.InSignature != config.InSignatureEXIF
}

func (o Options) usesEXIF() bool {
	return o.InSignature == config.InSignatureEXIF || o.InSignature == config.InSignatureNameEXIF
}

func (o Options) accepts(ext string) bool {
	if len(o.Extensions) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	for _, allowed := range o.Extensions {
		if allowed == ext {
			return true
		}
	}
	return false
}
