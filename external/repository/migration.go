package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`DO $$ BEGIN CREATE TYPE run_status AS ENUM ('running', 'completed', 'failed'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`CREATE TABLE IF NOT EXISTS pipeline_runs (
		id UUID PRIMARY KEY,
		input_video TEXT NOT NULL,
		output_video TEXT NOT NULL,
		audio_uri TEXT NOT NULL DEFAULT '',
		status run_status NOT NULL DEFAULT 'running',
		cue_count INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMPTZ NOT NULL,
		ended_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pipeline_runs_started ON pipeline_runs (started_at DESC)`,
	`CREATE TABLE IF NOT EXISTS subtitle_cues (
		run_id UUID NOT NULL REFERENCES pipeline_runs(id) ON DELETE CASCADE,
		cue_index INTEGER NOT NULL,
		transcript TEXT NOT NULL,
		start_seconds DOUBLE PRECISION NOT NULL,
		end_seconds DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (run_id, cue_index)
	)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
