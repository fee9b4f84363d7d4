// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/socialnet/models"
)

func scanPoll(row scanner) (models.Poll, error) {
	var p models.Poll
	err := row.Scan(&p.ID, &p.Title, &p.EventID, &p.CreatedByID, &p.IsActive, &p.CreatedAt)
	return p, err
}

func (t *Tx) InsertPoll(ctx context.Context, p *models.Poll) error {
	p.CreatedAt = t.Now()
	id, err := t.insertID(ctx, `
		INSERT INTO polls (event_id, title, created_by_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.EventID, p.Title, p.CreatedByID, p.IsActive, p.CreatedAt)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (t *Tx) GetPoll(ctx context.Context, id int64) (*models.Poll, error) {
	p, err := scanPoll(t.tx.QueryRowContext(ctx, `
		SELECT id, title, event_id, created_by_id, is_active, created_at FROM polls WHERE id = $1
	`, id))
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (t *Tx) ListPolls(ctx context.Context, eventID int64) ([]models.Poll, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, title, event_id, created_by_id, is_active, created_at FROM polls WHERE event_id = $1 ORDER BY id
	`, eventID)
	return collect(rows, err, scanPoll)
}

func (t *Tx) SetPollActive(ctx context.Context, pollID int64, active bool) error {
	ok, err := t.execAffected(ctx, `UPDATE polls SET is_active = $1 WHERE id = $2`, active, pollID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (t *Tx) InsertQuestion(ctx context.Context, pollID int64, question string) (int64, error) {
	return t.insertID(ctx, `
		INSERT INTO poll_questions (poll_id, question) VALUES ($1, $2) RETURNING id
	`, pollID, question)
}

func (t *Tx) InsertOption(ctx context.Context, questionID int64, label string) (int64, error) {
	return t.insertID(ctx, `
		INSERT INTO poll_options (question_id, label) VALUES ($1, $2) RETURNING id
	`, questionID, label)
}

// UpsertVote records v, replacing the voter's earlier choice on the same
// question. The unique (question_id, voter_id) index makes this a single
// atomic statement.
func (t *Tx) UpsertVote(ctx context.Context, v models.PollVote) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO poll_votes (question_id, option_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question_id, voter_id) DO UPDATE SET option_id = excluded.option_id
	`, v.QuestionID, v.OptionID, v.VoterID, t.Now())
	return classify(err)
}

// ListVotes returns every vote cast by voterID in pollID
func (t *Tx) ListVotes(ctx context.Context, pollID, voterID int64) ([]models.PollVote, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT v.question_id, v.option_id, v.voter_id
		FROM poll_votes v
		JOIN poll_questions q ON q.id = v.question_id
		WHERE q.poll_id = $1 AND v.voter_id = $2
		ORDER BY v.question_id
	`, pollID, voterID)
	return collect(rows, err, func(row scanner) (models.PollVote, error) {
		var v models.PollVote
		err := row.Scan(&v.QuestionID, &v.OptionID, &v.VoterID)
		return v, err
	})
}

// PollQuestions returns the poll's questions with options and live vote
// counts. Counts are computed here and never stored.
func (t *Tx) PollQuestions(ctx context.Context, pollID int64) ([]models.PollQuestion, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, poll_id, question FROM poll_questions WHERE poll_id = $1 ORDER BY id
	`, pollID)
	questions, err := collect(rows, err, func(row scanner) (models.PollQuestion, error) {
		var q models.PollQuestion
		err := row.Scan(&q.ID, &q.PollID, &q.Question)
		q.Options = []models.PollOption{}
		return q, err
	})
	if err != nil {
		return nil, err
	}

	rows, err = t.tx.QueryContext(ctx, `
		SELECT o.id, o.question_id, o.label, COUNT(v.id)
		FROM poll_options o
		JOIN poll_questions q ON q.id = o.question_id
		LEFT JOIN poll_votes v ON v.option_id = o.id
		WHERE q.poll_id = $1
		GROUP BY o.id, o.question_id, o.label
		ORDER BY o.id
	`, pollID)
	options, err := collect(rows, err, func(row scanner) (models.PollOption, error) {
		var o models.PollOption
		err := row.Scan(&o.ID, &o.QuestionID, &o.Label, &o.Votes)
		return o, err
	})
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}
	for _, o := range options {
		if i, ok := index[o.QuestionID]; ok {
			questions[i].Options = append(questions[i].Options, o)
		}
	}
	return questions, nil
}
