package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"eventsort/internal/catalog"
	"eventsort/internal/config"
	"eventsort/internal/logging"
	"eventsort/internal/media"
	"eventsort/internal/services"
	"eventsort/internal/signature"
	"eventsort/internal/textutil"
)

// ErrSourceUnavailable is the only fatal batch error: the source directory
// is missing, not a directory, or holds no eligible files. It is a
// services.ErrPrecondition.
var ErrSourceUnavailable = fmt.Errorf("source directory unavailable: %w", services.ErrPrecondition)

const (
	miscDirName     = "misc"
	noArtistDirName = "no_artist"
	maxSuffix       = 9999
)

// Catalog is the read side of the catalog the router needs.
type Catalog interface {
	FindEventsContaining(ctx context.Context, t time.Time) ([]catalog.Event, error)
	FindArtist(ctx context.Context, deviceMake, deviceModel string, t time.Time) (catalog.Artist, bool, error)
}

// MetadataReader reads capture metadata from a file.
type MetadataReader interface {
	Read(path string) (media.Metadata, error)
}

// FileSystem performs the side effects of routing.
type FileSystem interface {
	Walk(root string, recursive bool) ([]string, error)
	MkdirAll(dir string) error
	Move(src, dst string) error
	Copy(src, dst string) error
	Exists(path string) (bool, error)
	CountFiles(dir string) (int, error)
}

// Router routes files from a source tree into a library tree.
type Router struct {
	catalog Catalog
	meta    MetadataReader
	fs      FileSystem
	opts    Options
	logger  *slog.Logger
}

// New constructs a Router. A nil meta disables EXIF and device lookups; a
// zero Output selects the dashed signature.
func New(cat Catalog, meta MetadataReader, fs FileSystem, opts Options, logger *slog.Logger) *Router {
	if opts.Output.Name == "" {
		opts.Output, _ = signature.LookupOutput("dashed")
	}
	return &Router{
		catalog: cat,
		meta:    meta,
		fs:      fs,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "router"),
	}
}

// Options returns the routing policy in effect.
func (r *Router) Options() Options {
	return r.opts
}

// Enumerate lists eligible files under src in stable lexical order. Files
// already inside target are skipped so a library nested in its inbox is
// never re-sorted.
func (r *Router) Enumerate(src, target string) ([]string, error) {
	paths, err := r.fs.Walk(src, r.opts.Recursive)
	if err != nil {
		return nil, services.Wrap(ErrSourceUnavailable, "router", "enumerate", src, err)
	}
	targetPrefix := ""
	if target != "" {
		targetPrefix = filepath.Clean(target) + string(filepath.Separator)
	}

	files := make([]string, 0, len(paths))
	for _, path := range paths {
		if targetPrefix != "" && strings.HasPrefix(path, targetPrefix) {
			continue
		}
		if !r.opts.accepts(filepath.Ext(path)) {
			continue
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		return nil, services.Wrap(ErrSourceUnavailable, "router", "enumerate", "no eligible files in "+src, nil)
	}
	sort.Strings(files)
	return files, nil
}

// Route processes one file and reports its outcome. It never returns an
// error; failures are folded into the Result.
func (r *Router) Route(ctx context.Context, path, target string) Result {
	logger := logging.WithContext(ctx, r.logger).With(logging.String(logging.FieldFile, path))
	res := Result{Source: path}
	name := filepath.Base(path)

	meta := r.readMetadata(logger, path)
	ts, source := r.resolveTime(name, meta)
	if ts.IsZero() {
		if !r.opts.ProcessUnmatched {
			res.Outcome = SkippedUnmatched
			res.Reason = "no timestamp in name or metadata"
			logger.Debug("file skipped",
				logging.Args(logging.DecisionAttrs("timestamp", "unparsed", "process_unmatched disabled")...)...)
			return res
		}
		return r.place(logger, res, filepath.Join(target, miscDirName), name, RoutedToMisc)
	}
	res.Time = ts
	res.TimeSource = source

	events, err := r.catalog.FindEventsContaining(ctx, ts)
	if err != nil {
		return r.fail(logger, res, services.Wrap(services.ErrIO, "router", "find events", "", err))
	}

	dir := filepath.Join(target, ts.Format("2006"), miscDirName)
	var outcome Outcome
	switch len(events) {
	case 0:
		outcome = RoutedToMisc
		logger.Debug("no event contains timestamp",
			logging.Args(logging.DecisionAttrs("event_binding", "misc", ts.Format(time.DateTime))...)...)
	default:
		event := events[0]
		res.EventID = event.ID
		res.EventTitle = event.Title
		dir = eventDir(target, event)
		if len(events) > 1 {
			titles := make([]string, 0, len(events))
			for _, e := range events {
				titles = append(titles, fmt.Sprintf("#%d %s", e.ID, e.Title))
			}
			res.Warning = fmt.Sprintf("%s: %d overlapping events (%s); using #%d",
				name, len(events), strings.Join(titles, ", "), event.ID)
			logging.WarnWithContext(logger, "overlapping events contain timestamp; using first", "event_overlap",
				logging.Int("event_count", len(events)),
				logging.Int64("event_id", event.ID),
				logging.String(logging.FieldErrorHint, "remove the overlap between these events in the catalog"),
				logging.String(logging.FieldImpact, "file filed under the earliest created event"),
			)
		}
	}

	if meta.HasDevice() {
		artist, found, err := r.catalog.FindArtist(ctx, meta.Make, meta.Model, ts)
		if err != nil {
			return r.fail(logger, res, services.Wrap(services.ErrIO, "router", "find artist", "", err))
		}
		if found {
			res.ArtistID = artist.ID
			ts = artist.Shift.Apply(ts)
			res.Time = ts
		}
	}
	if r.opts.RequireArtist && res.ArtistID == 0 {
		dir = filepath.Join(dir, noArtistDirName)
		outcome = RoutedNoArtist
	}

	newName, err := r.renderName(dir, ts, name)
	if err != nil {
		return r.fail(logger, res, err)
	}
	return r.place(logger, res, dir, newName, outcome)
}

func (r *Router) readMetadata(logger *slog.Logger, path string) media.Metadata {
	if r.meta == nil {
		return media.Metadata{}
	}
	meta, err := r.meta.Read(path)
	if err != nil {
		if !errors.Is(err, media.ErrNoMetadata) {
			logger.Debug("metadata read failed", logging.Error(err))
		}
		return media.Metadata{}
	}
	return meta
}

func (r *Router) resolveTime(name string, meta media.Metadata) (time.Time, string) {
	if r.opts.usesName() {
		if rec := signature.Recognize(name); rec.Recognized {
			return rec.Time, "name:" + rec.Signature
		}
	}
	if r.opts.usesEXIF() && !meta.Taken.IsZero() {
		return meta.Taken, "exif"
	}
	return time.Time{}, ""
}

func (r *Router) renderName(dir string, ts time.Time, original string) (string, error) {
	count := 0
	if r.opts.Output.Numbered {
		n, err := r.fs.CountFiles(dir)
		if err != nil {
			return "", services.Wrap(services.ErrIO, "router", "count destination files", dir, err)
		}
		count = n
	}
	return r.opts.Output.FileName(ts, count, original, filepath.Ext(original)), nil
}

// place resolves collisions under dir and transfers the file. outcome
// overrides Moved/Copied for misc and no_artist placements.
func (r *Router) place(logger *slog.Logger, res Result, dir, fileName string, outcome Outcome) Result {
	dest := filepath.Join(dir, fileName)
	if filepath.Clean(dest) == filepath.Clean(res.Source) {
		res.Destination = dest
		res.Outcome = SkippedNameCollision
		res.Reason = "already in place"
		return res
	}

	exists, err := r.fs.Exists(dest)
	if err != nil {
		return r.fail(logger, res, services.Wrap(services.ErrIO, "router", "stat destination", dest, err))
	}
	if exists && !r.opts.ProcessSameName {
		if r.opts.CollisionPolicy != config.CollisionSuffix {
			res.Destination = dest
			res.Outcome = SkippedNameCollision
			res.Reason = "destination exists"
			logger.Debug("file skipped",
				logging.Args(logging.DecisionAttrs("collision", "skip", dest)...)...)
			return res
		}
		dest, err = r.nextFreeName(dir, fileName)
		if err != nil {
			return r.fail(logger, res, err)
		}
	}
	res.Destination = dest

	action, transfer := "move", r.fs.Move
	if r.opts.Copy {
		action, transfer = "copy", r.fs.Copy
	}
	if !r.opts.DryRun {
		if err := r.fs.MkdirAll(dir); err != nil {
			return r.fail(logger, res, services.Wrap(services.ErrIO, "router", "create directory", dir, err))
		}
		if err := transfer(res.Source, dest); err != nil {
			return r.fail(logger, res, services.Wrap(services.ErrIO, "router", action, dest, err))
		}
		res.Transferred = action
	}

	switch {
	case outcome != "":
		res.Outcome = outcome
	case r.opts.Copy:
		res.Outcome = Copied
	default:
		res.Outcome = Moved
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldDestination, dest),
		logging.String(logging.FieldOutcome, string(res.Outcome)),
		logging.Bool("dry_run", r.opts.DryRun),
	}
	if !res.Time.IsZero() {
		attrs = append(attrs, logging.Time(logging.FieldTaken, res.Time), logging.String("time_source", res.TimeSource))
	}
	logger.Info("file routed", logging.Args(attrs...)...)
	return res
}

func (r *Router) nextFreeName(dir, fileName string) (string, error) {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	for n := 1; n <= maxSuffix; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
		exists, err := r.fs.Exists(candidate)
		if err != nil {
			return "", services.Wrap(services.ErrIO, "router", "stat destination", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrIO, "router", "allocate suffix", fileName, fmt.Errorf("more than %d collisions", maxSuffix))
}

func (r *Router) fail(logger *slog.Logger, res Result, err error) Result {
	res.Outcome = IoError
	res.Reason = err.Error()
	res.ErrorKind = services.Kind(err)
	logging.WarnWithContext(logger, "file not routed", "route_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorKind, res.ErrorKind),
		logging.String(logging.FieldErrorHint, "check permissions and free space on the target"),
		logging.String(logging.FieldImpact, "file left in the source directory"),
	)
	return res
}

// eventDir is <target>/<year>/<MM>_<title> using the event start.
func eventDir(target string, event catalog.Event) string {
	start := event.Interval.Start
	title := textutil.SanitizeFolderName(event.Title, fmt.Sprintf("event_%d", event.ID))
	return filepath.Join(target, start.Format("2006"), fmt.Sprintf("%s_%s", start.Format("01"), title))
}
