package repository

import (
	"context"
	"time"

	"github.com/foxseedlab/jimaku/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CreateRun(ctx context.Context, input repository.CreateRunInput) (*repository.Run, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO pipeline_runs (id, input_video, output_video, started_at, status)
		 VALUES ($1, $2, $3, $4, 'running')
		 RETURNING id, input_video, output_video, audio_uri, status, cue_count, error_message, started_at, ended_at`,
		input.ID, input.InputVideo, input.OutputVideo, input.StartedAt)
	var run repository.Run
	var endedAt *time.Time
	err := row.Scan(&run.ID, &run.InputVideo, &run.OutputVideo, &run.AudioURI, &run.Status, &run.CueCount, &run.ErrorMessage, &run.StartedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	run.EndedAt = endedAt
	return &run, nil
}

func (r *PostgresRepository) CompleteRun(ctx context.Context, input repository.CompleteRunInput) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE pipeline_runs SET status = 'completed', audio_uri = $2, cue_count = $3, ended_at = $4 WHERE id = $1`,
		input.RunID, input.AudioURI, input.CueCount, input.EndedAt)
	return err
}

func (r *PostgresRepository) FailRun(ctx context.Context, input repository.FailRunInput) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE pipeline_runs SET status = 'failed', error_message = $2, ended_at = $3 WHERE id = $1`,
		input.RunID, input.ErrorMessage, input.EndedAt)
	return err
}

// InsertCues writes all cues in one transaction so a run never has a partial
// cue list.
func (r *PostgresRepository) InsertCues(ctx context.Context, runID string, cues []repository.SubtitleCue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, c := range cues {
		batch.Queue(
			`INSERT INTO subtitle_cues (run_id, cue_index, transcript, start_seconds, end_seconds)
			 VALUES ($1, $2, $3, $4, $5)`,
			runID, c.CueIndex, c.Transcript, c.StartSeconds, c.EndSeconds)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListCuesByRunID(ctx context.Context, runID string) ([]repository.SubtitleCue, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT run_id, cue_index, transcript, start_seconds, end_seconds
		 FROM subtitle_cues WHERE run_id = $1 ORDER BY cue_index ASC`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.SubtitleCue
	for rows.Next() {
		var c repository.SubtitleCue
		if err := rows.Scan(&c.RunID, &c.CueIndex, &c.Transcript, &c.StartSeconds, &c.EndSeconds); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
