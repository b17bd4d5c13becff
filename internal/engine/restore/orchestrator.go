package restore

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures one restore run.
type Options struct {
	// Root is the install root packages are materialized under.
	Root string
	// Sources lists the sources tried for every package, primary first.
	Sources domain.SourceList
	// SaveMode selects the persisted artifacts. SaveModeNone fetches and validates without writing.
	// Callers resolve an unset mode to domain.DefaultSaveMode.
	SaveMode domain.SaveMode
	// DisableParallel restores packages one after another in declaration order.
	DisableParallel bool
	// MaxParallel bounds concurrent restores. Zero means runtime.NumCPU().
	MaxParallel int
	// NoCache bypasses the download cache.
	NoCache bool
	// Notice is printed once per run before the first fetch. Empty disables it.
	Notice string
	// MaxArchiveSize caps each downloaded archive in bytes. Zero means domain.MaxArchiveSize.
	MaxArchiveSize int64
}

// Orchestrator restores missing packages from their sources.
type Orchestrator struct {
	fetcher ports.PackageFetcher
	writer  ports.PackageWriter
	state   ports.InstallState
	cache   ports.PackageCache
	logger  ports.Logger
	tracer  ports.Tracer
}

// NewOrchestrator creates a new Orchestrator. cache may be nil.
func NewOrchestrator(
	fetcher ports.PackageFetcher,
	writer ports.PackageWriter,
	state ports.InstallState,
	cache ports.PackageCache,
	logger ports.Logger,
	tracer ports.Tracer,
) *Orchestrator {
	return &Orchestrator{
		fetcher: fetcher,
		writer:  writer,
		state:   state,
		cache:   cache,
		logger:  logger,
		tracer:  tracer,
	}
}

type run struct {
	o        *Orchestrator
	opts     Options
	attempts []domain.SourceDescriptor
	notice   sync.Once
}

// Restore restores every reference of missing and reports one outcome per reference,
// in declaration order. A package failing on every source does not stop the others.
func (o *Orchestrator) Restore(
	ctx context.Context,
	missing *domain.ReferenceSet,
	opts Options,
) (*domain.RestoreReport, error) {
	refs := missing.Slice()
	report := &domain.RestoreReport{Outcomes: make([]domain.RestoreOutcome, len(refs))}
	if len(refs) == 0 {
		return report, nil
	}
	if len(opts.Sources.Primary) == 0 {
		return nil, domain.ErrNoEnabledSource
	}

	ctx, span := o.tracer.Start(ctx, "Restore packages")
	defer span.End()
	span.SetAttribute("packages", len(refs))
	span.SetAttribute("parallel", !opts.DisableParallel)

	r := &run{o: o, opts: opts, attempts: opts.Sources.Attempts()}

	if opts.DisableParallel {
		for i, ref := range refs {
			report.Outcomes[i] = r.restoreOne(ctx, ref)
		}
		return report, nil
	}

	var g errgroup.Group
	g.SetLimit(r.bound())
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			report.Outcomes[i] = failed(ref, err)
			continue
		}
		g.Go(func() error {
			report.Outcomes[i] = r.restoreOne(ctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	return report, nil
}

func (r *run) bound() int {
	if r.opts.MaxParallel > 0 {
		return r.opts.MaxParallel
	}
	return runtime.NumCPU()
}

func (r *run) restoreOne(ctx context.Context, ref domain.PackageReference) domain.RestoreOutcome {
	id := ref.Identity

	if err := ctx.Err(); err != nil {
		return failed(ref, err)
	}

	ctx, span := r.o.tracer.Start(ctx, "Restore "+id.String())
	defer span.End()
	span.SetAttribute("package", id.String())

	outcome := r.materialize(ctx, ref)
	span.SetAttribute("status", outcome.Status.String())
	if outcome.Err != nil {
		span.RecordError(outcome.Err)
	}
	return outcome
}

func (r *run) materialize(ctx context.Context, ref domain.PackageReference) domain.RestoreOutcome {
	id := ref.Identity
	root := r.opts.Root

	if r.o.state.IsInstalled(root, id) {
		return domain.RestoreOutcome{Reference: ref, Status: domain.StatusAlreadyPresent}
	}

	if archive := r.cached(id); archive != nil {
		written, err := r.o.writer.Write(root, id, archive, r.opts.SaveMode)
		if err == nil {
			return r.written(ref, written, domain.SourceDescriptor{}, true)
		}
		r.o.logger.Debug("Ignoring cached archive of " + id.String() + ": " + err.Error())
	}

	archive, source, err := r.fetch(ctx, id)
	if err != nil {
		return failed(ref, err)
	}
	r.store(id, archive)

	written, err := r.o.writer.Write(root, id, archive, r.opts.SaveMode)
	if err != nil {
		return failed(ref, &domain.FetchError{Source: source, Identity: id, Err: err})
	}
	return r.written(ref, written, source, false)
}

func (r *run) written(ref domain.PackageReference, written bool, source domain.SourceDescriptor, fromCache bool) domain.RestoreOutcome {
	if !written {
		return domain.RestoreOutcome{Reference: ref, Status: domain.StatusAlreadyPresent}
	}
	if r.opts.SaveMode != domain.SaveModeNone {
		r.o.logger.Debug("Added package '" + ref.Identity.String() + "' to folder '" + r.opts.Root + "'")
	}
	return domain.RestoreOutcome{
		Reference: ref,
		Status:    domain.StatusInstalled,
		Source:    source,
		FromCache: fromCache,
	}
}

// fetch tries every source in priority order and returns the first archive obtained.
func (r *run) fetch(ctx context.Context, id domain.PackageIdentity) ([]byte, domain.SourceDescriptor, error) {
	var lastErr error
	for _, source := range r.attempts {
		if err := ctx.Err(); err != nil {
			return nil, domain.SourceDescriptor{}, errors.Join(err, lastErr)
		}

		r.showNotice()

		archive, err := r.fetchFrom(ctx, source, id)
		if err == nil {
			return archive, source, nil
		}
		lastErr = &domain.FetchError{Source: source, Identity: id, Err: err}
		r.o.logger.Debug(lastErr.Error())
	}
	return nil, domain.SourceDescriptor{}, lastErr
}

func (r *run) fetchFrom(ctx context.Context, source domain.SourceDescriptor, id domain.PackageIdentity) ([]byte, error) {
	rc, err := r.o.fetcher.Fetch(ctx, source, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	limit := r.opts.MaxArchiveSize
	if limit <= 0 {
		limit = domain.MaxArchiveSize
	}

	archive, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSourceUnreachable.Error())
	}
	if int64(len(archive)) > limit {
		return nil, zerr.With(domain.ErrArchiveTooLarge, "limit", limit)
	}
	return archive, nil
}

func (r *run) showNotice() {
	if r.opts.Notice == "" {
		return
	}
	r.notice.Do(func() {
		r.o.logger.Info(r.opts.Notice)
	})
}

func (r *run) cached(id domain.PackageIdentity) []byte {
	if r.opts.NoCache || r.o.cache == nil {
		return nil
	}
	archive, err := r.o.cache.Get(id)
	if err != nil {
		r.o.logger.Debug(err.Error())
		return nil
	}
	return archive
}

func (r *run) store(id domain.PackageIdentity, archive []byte) {
	if r.opts.NoCache || r.o.cache == nil {
		return
	}
	if err := r.o.cache.Put(id, archive); err != nil {
		r.o.logger.Debug(err.Error())
	}
}

func failed(ref domain.PackageReference, err error) domain.RestoreOutcome {
	return domain.RestoreOutcome{Reference: ref, Status: domain.StatusFailed, Err: err}
}
