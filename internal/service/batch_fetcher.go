package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/metrics"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

// VideoBatchSize is the most ids videos.list accepts in one call.
const VideoBatchSize = 50

// BatchStatsFetcher fetches video statistics in chunks on a bounded pool.
type BatchStatsFetcher struct {
	upstream Upstream
	workers  int
	logger   zerolog.Logger
}

func NewBatchStatsFetcher(upstream Upstream, workers int, logger zerolog.Logger) *BatchStatsFetcher {
	if workers < 1 {
		workers = 1
	}
	return &BatchStatsFetcher{upstream: upstream, workers: workers, logger: logger}
}

// Chunk splits ids into contiguous slices of at most size elements.
func Chunk(ids []string, size int) [][]string {
	if size < 1 || len(ids) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// FetchDetails returns one record per video the upstream knows about, in
// chunk order. Failed chunks are reported alongside the records; the call
// only fails when every chunk failed or ctx was cancelled.
func (f *BatchStatsFetcher) FetchDetails(ctx context.Context, videoIDs []string) (*model.BatchResult, error) {
	chunks := Chunk(videoIDs, VideoBatchSize)
	if len(chunks) == 0 {
		return &model.BatchResult{Records: []model.VideoRecord{}}, nil
	}

	results := make([][]model.VideoRecord, len(chunks))
	failures := make([]*model.ChunkFailure, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			videos, err := f.upstream.ListVideos(gctx, chunk)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				metrics.ChunksFetched.WithLabelValues("failed").Inc()
				failures[i] = &model.ChunkFailure{
					Index:    i,
					VideoIDs: chunk,
					Kind:     string(apperr.KindOf(err)),
					Message:  err.Error(),
				}
				f.logger.Warn().Err(err).Int("chunk", i).Int("size", len(chunk)).Msg("statistics chunk failed")
				return nil
			}

			metrics.ChunksFetched.WithLabelValues("ok").Inc()
			results[i] = recordsFromVideos(videos)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &model.BatchResult{Records: []model.VideoRecord{}}
	for i := range chunks {
		if failures[i] != nil {
			out.FailedChunks = append(out.FailedChunks, *failures[i])
			continue
		}
		out.Records = append(out.Records, results[i]...)
	}

	if len(out.FailedChunks) == len(chunks) {
		return nil, apperr.Upstream("every statistics batch failed", nil).
			WithContext("chunks", len(chunks))
	}
	return out, nil
}

func recordsFromVideos(videos []*yt.Video) []model.VideoRecord {
	records := make([]model.VideoRecord, 0, len(videos))
	for _, v := range videos {
		if v == nil {
			continue
		}
		records = append(records, recordFromVideo(v))
	}
	return records
}

// recordFromVideo treats missing statistics as zero; the API omits
// likeCount when likes are hidden and commentCount when comments are off.
func recordFromVideo(v *yt.Video) model.VideoRecord {
	rec := model.VideoRecord{VideoID: v.Id}
	if v.Snippet != nil {
		rec.Title = v.Snippet.Title
		rec.ChannelID = v.Snippet.ChannelId
		rec.ThumbnailURL = bestThumbnail(v.Snippet.Thumbnails)
		if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
			rec.PublishedAt = t.UTC()
		}
	}
	if v.Statistics != nil {
		rec.Views = v.Statistics.ViewCount
		rec.Likes = v.Statistics.LikeCount
		rec.Comments = v.Statistics.CommentCount
	}
	return rec
}
