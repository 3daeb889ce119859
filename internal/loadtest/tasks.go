package loadtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
)

// ErrSkipped means the task had nothing to act on, e.g. no known ids yet.
var ErrSkipped = errors.New("loadtest: task skipped")

// Session is what a task sees of the user running it.
type Session struct {
	Client *Client
	IDs    *KnownIDs
	Rand   *rand.Rand
}

// Task is one weighted user action.
type Task struct {
	Name   string
	Weight int
	Run    func(ctx context.Context, s *Session) error
}

// Stats names for each endpoint; ids are folded into [id].
const (
	NameListManagers  = "GET /managers"
	NameGetManager    = "GET /managers/[id]"
	NameCreateManager = "POST /managers"
	NameUpdateManager = "PUT /managers/[id]"
	NameDeleteManager = "DELETE /managers/[id]"
	NameReport        = "GET /reports/report"
)

const maxContracts = 50

// DefaultTasks returns the fixed task mix.
func DefaultTasks() []Task {
	return []Task{
		{Name: NameListManagers, Weight: 3, Run: listManagers},
		{Name: NameGetManager, Weight: 2, Run: getManager},
		{Name: NameCreateManager, Weight: 1, Run: createManager},
		{Name: NameUpdateManager, Weight: 1, Run: updateManager},
		{Name: NameDeleteManager, Weight: 1, Run: deleteManager},
		{Name: NameReport, Weight: 2, Run: getReport},
	}
}

func listManagers(ctx context.Context, s *Session) error {
	_, err := s.Client.Do(ctx, http.MethodGet, "/managers", NameListManagers, nil)
	return err
}

func getManager(ctx context.Context, s *Session) error {
	id, ok := s.IDs.Random(s.Rand)
	if !ok {
		return ErrSkipped
	}
	_, err := s.Client.Do(ctx, http.MethodGet, "/managers/"+id, NameGetManager, nil)
	return err
}

func createManager(ctx context.Context, s *Session) error {
	body := map[string]any{
		"name":            fmt.Sprintf("Test Manager %d", s.Rand.IntN(1000)+1),
		"contracts_count": s.Rand.IntN(maxContracts + 1),
	}
	resp, err := s.Client.Do(ctx, http.MethodPost, "/managers", NameCreateManager, body)
	if err != nil {
		return err
	}
	if resp.Status != http.StatusCreated {
		return nil
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body, &created); err != nil || created.ID == "" {
		return fmt.Errorf("%s: response has no id", NameCreateManager)
	}
	s.IDs.Add(created.ID)
	return nil
}

func updateManager(ctx context.Context, s *Session) error {
	id, ok := s.IDs.Random(s.Rand)
	if !ok {
		return ErrSkipped
	}
	body := map[string]any{"contracts_count": s.Rand.IntN(maxContracts + 1)}
	_, err := s.Client.Do(ctx, http.MethodPut, "/managers/"+id, NameUpdateManager, body)
	return err
}

func deleteManager(ctx context.Context, s *Session) error {
	id, ok := s.IDs.Random(s.Rand)
	if !ok {
		return ErrSkipped
	}
	resp, err := s.Client.Do(ctx, http.MethodDelete, "/managers/"+id, NameDeleteManager, nil)
	if err != nil {
		return err
	}
	if resp.Status == http.StatusOK {
		s.IDs.Remove(id)
	}
	return nil
}

func getReport(ctx context.Context, s *Session) error {
	_, err := s.Client.Do(ctx, http.MethodGet, "/reports/report", NameReport, nil)
	return err
}
