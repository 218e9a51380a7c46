// Package exporter orchestrates a full export run: fetching history,
// merging it with stored batch captures, rendering transcripts, uploading
// per-day documents, and reconciling folder sharing.
package exporter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jflowers/slackfeeder-sub000/internal/drive"
	"github.com/jflowers/slackfeeder-sub000/internal/export"
	"github.com/jflowers/slackfeeder-sub000/internal/people"
	"github.com/jflowers/slackfeeder-sub000/internal/share"
)

// HistorySource fetches live conversation data. A nil source limits the run
// to stored batch files.
type HistorySource interface {
	FetchHistory(ctx context.Context, channelID, oldest, latest string) ([]export.Batch, error)
	ConversationMembers(ctx context.Context, channelID string) ([]string, error)
}

// Options controls an export run.
type Options struct {
	StartDate      string // YYYY-MM-DD or "YYYY-MM-DD HH:MM:SS", UTC
	EndDate        string // same forms; end of day when no time given
	Upload         bool
	Share          bool
	OutputDir      string
	ConfigDir      string // holds channels.json, people.json, browser-export.json, batch dirs
	ChunkSize      int    // messages per document chunk; 0 means the default
	ParentFolderID string // Drive folder that holds per-conversation folders
	BrowserBatches bool   // include conversations listed in browser-export.json
}

type Exporter struct {
	source   HistorySource
	store    drive.DocumentStore
	resolver *people.Resolver
	dir      *people.Directory
	syncer   *share.Syncer
	writer   *TranscriptWriter
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

func New(source HistorySource, store drive.DocumentStore, resolver *people.Resolver, dir *people.Directory, opts Options, logger *zap.Logger) (*Exporter, error) {
	if opts.Upload && store == nil {
		return nil, fmt.Errorf("upload requested without a document store")
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = export.DefaultChunkSize
	}

	writer, err := NewTranscriptWriter(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	e := &Exporter{
		source:   source,
		store:    store,
		resolver: resolver,
		dir:      dir,
		writer:   writer,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
	if store != nil {
		e.syncer = share.NewSyncer(store, logger)
	}
	return e, nil
}

// Run exports every enabled conversation. Per-conversation failures are
// counted, not propagated: one bad conversation never blocks the rest.
func (e *Exporter) Run(ctx context.Context) (*export.Stats, error) {
	startTS, err := export.ParseDate(e.opts.StartDate, false)
	if err != nil {
		return nil, err
	}
	endTS, err := export.ParseDate(e.opts.EndDate, true)
	if err != nil {
		return nil, err
	}

	convs, err := e.loadConversations()
	if err != nil {
		return nil, err
	}

	stats := &export.Stats{}
	for _, conv := range convs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := e.ExportConversation(ctx, conv, startTS, endTS, stats); err != nil {
			e.logger.Error("Conversation export failed",
				zap.String("conversation", conv.Title()), zap.Error(err))
			stats.Failed++
		}
	}

	stats.Log(e.logger, e.opts.Upload)
	return stats, nil
}

// loadConversations merges the channel list with browser-export entries.
// API-backed entries come first so shared watermark folders are warm.
func (e *Exporter) loadConversations() ([]people.Conversation, error) {
	convs, err := people.LoadConversations(filepath.Join(e.opts.ConfigDir, "channels.json"), e.logger)
	if err != nil {
		return nil, err
	}

	if !e.opts.BrowserBatches {
		return convs, nil
	}

	browser, err := people.LoadBrowserExports(filepath.Join(e.opts.ConfigDir, "browser-export.json"), e.logger)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(convs))
	for _, c := range convs {
		seen[c.ID] = true
	}
	for _, c := range browser {
		if c.ID != "" && seen[c.ID] {
			e.logger.Warn("Conversation listed in both channels and browser-export, keeping the channel entry",
				zap.String("conversation", c.ID))
			continue
		}
		convs = append(convs, c)
	}
	return convs, nil
}

// ExportConversation runs the full pipeline for one conversation.
func (e *Exporter) ExportConversation(ctx context.Context, conv people.Conversation, startTS, endTS string, stats *export.Stats) error {
	title := conv.Title()
	logger := e.logger.With(zap.String("conversation", title))

	folderID, stored, storedOK, err := e.lookupWatermark(ctx, conv, logger)
	if err != nil {
		return err
	}
	oldest, fromWatermark := export.ResolveStartBound(startTS, stored)

	batches, err := e.gatherBatches(ctx, conv, oldest, endTS, logger)
	if err != nil {
		return err
	}

	msgs, invalid := export.DedupeAndSort(batches, logger)
	stats.Invalid += invalid
	msgs = export.FilterByRange(msgs, oldest, endTS, fromWatermark)

	if len(msgs) == 0 {
		logger.Info("No messages in range, skipping")
		stats.Skipped++
		return nil
	}
	stats.TotalMessages += len(msgs)

	resolve := func(id string) (string, bool) {
		return e.resolver.DisplayName(ctx, id)
	}
	for i := range msgs {
		msgs[i].Body = export.ReplaceUserMentions(msgs[i].Body, resolve)
	}

	transcript := export.AssembleThreads(msgs, resolve)
	ref, err := e.writer.WriteTranscript(title, transcript)
	if err != nil {
		return err
	}
	logger.Info("Wrote local transcript",
		zap.String("path", ref.Path), zap.Int("messages", len(msgs)))

	uploadFailed := false
	if e.opts.Upload && folderID != "" {
		uploadFailed = e.uploadDays(ctx, title, folderID, msgs, resolve, stats, logger)
	}

	if e.opts.Upload && folderID != "" && !uploadFailed && storedOK {
		e.advanceWatermark(ctx, folderID, stored, msgs, logger)
	}

	if e.opts.Share && conv.ShouldShare() && e.syncer != nil && folderID != "" {
		e.shareFolder(ctx, conv, folderID, stats, logger)
	}

	stats.Processed++
	return nil
}

// lookupWatermark finds or creates the conversation folder and reads its
// stored export bound. A failed folder preparation fails the conversation,
// since every upload would be lost. A failed watermark read degrades to a
// full-range export, with storedOK false so the run never overwrites a
// bound it could not see.
func (e *Exporter) lookupWatermark(ctx context.Context, conv people.Conversation, logger *zap.Logger) (folderID, stored string, storedOK bool, err error) {
	if !e.opts.Upload || e.store == nil {
		return "", "", true, nil
	}

	folderName := export.SanitizeFolderName(conv.Title())
	folderID, err = e.store.CreateOrGetFolder(ctx, folderName, e.opts.ParentFolderID)
	if err != nil {
		return "", "", false, fmt.Errorf("prepare folder for %s: %w", conv.Title(), err)
	}

	stored, err = e.store.Watermark(ctx, folderID)
	if err != nil {
		logger.Warn("Failed to read watermark, exporting full range", zap.Error(err))
		return folderID, "", false, nil
	}
	return folderID, stored, true, nil
}

// gatherBatches collects API pages and stored batch files for the
// conversation.
func (e *Exporter) gatherBatches(ctx context.Context, conv people.Conversation, oldest, latest string, logger *zap.Logger) ([]export.Batch, error) {
	var batches []export.Batch

	if conv.BatchDir != "" {
		dir := filepath.Join(e.opts.ConfigDir, conv.BatchDir)
		fileBatches, err := LoadBatchDir(dir, logger)
		if err != nil {
			return nil, err
		}
		batches = append(batches, fileBatches...)
	}

	if e.source != nil && conv.ID != "" {
		apiBatches, err := e.source.FetchHistory(ctx, conv.ID, oldest, latest)
		switch {
		case err != nil && len(batches) > 0:
			// Browser-captured conversations may not be visible to the
			// API token; the stored captures still stand on their own.
			logger.Warn("Failed to fetch live history, continuing with stored captures",
				zap.Error(err))
		case err != nil:
			return nil, err
		default:
			batches = append(batches, apiBatches...)
		}
	}

	return batches, nil
}

// uploadDays writes one document per UTC day, chunking oversized days.
// Returns true when any upload failed.
func (e *Exporter) uploadDays(ctx context.Context, title, folderID string, msgs []export.Message, resolve export.NameResolver, stats *export.Stats, logger *zap.Logger) (failed bool) {
	for _, day := range export.PartitionByDay(msgs) {
		name := docName(title, day.Date)

		exists, err := e.store.DocumentExists(ctx, name, folderID)
		if err != nil {
			logger.Warn("Failed to check for existing document",
				zap.String("doc", name), zap.Error(err))
			stats.UploadFailed++
			failed = true
			continue
		}

		chunks := export.Chunk(day.Messages, e.opts.ChunkSize)
		dayFailed := false
		for i, chunk := range chunks {
			text := export.AssembleThreads(chunk, resolve)
			if len(chunks) > 1 {
				text = chunkMarker(i+1, len(chunks)) + text
			}
			if !exists && i == 0 {
				text = docHeader(title, day.Date, e.now()) + text
			}

			if err := e.store.UploadDocument(ctx, name, folderID, text); err != nil {
				logger.Warn("Failed to upload document chunk",
					zap.String("doc", name),
					zap.Int("chunk", i+1),
					zap.Error(err))
				stats.UploadFailed++
				dayFailed = true
				failed = true
				break
			}
			// Later chunks append to the document created by the first.
			exists = true
		}

		if !dayFailed {
			stats.Uploaded++
			logger.Info("Uploaded day",
				zap.String("doc", name),
				zap.Int("messages", len(day.Messages)),
				zap.Int("chunks", len(chunks)))
		}
	}
	return failed
}

// advanceWatermark stores the run's newest timestamp, but only ever moves
// the bound forward.
func (e *Exporter) advanceWatermark(ctx context.Context, folderID, stored string, msgs []export.Message, logger *zap.Logger) {
	next := export.LatestTimestamp(msgs)
	if !export.ShouldAdvance(stored, next) {
		return
	}
	if err := e.store.SetWatermark(ctx, folderID, next); err != nil {
		logger.Warn("Failed to advance watermark", zap.Error(err))
		return
	}
	logger.Info("Advanced watermark",
		zap.String("from", stored), zap.String("to", next))
}

func (e *Exporter) shareFolder(ctx context.Context, conv people.Conversation, folderID string, stats *export.Stats, logger *zap.Logger) {
	members := share.Members(ctx, conv, e.source, logger)
	recipients := share.ComputeRecipients(ctx, members, conv.ShareMembers, e.resolver, e.dir, logger)
	if len(recipients) == 0 {
		logger.Info("No share recipients after opt-outs and allow-list")
	}
	if err := e.syncer.SyncFolder(ctx, folderID, recipients, stats); err != nil {
		logger.Warn("Failed to reconcile folder sharing", zap.Error(err))
		stats.ShareFailed++
	}
}
