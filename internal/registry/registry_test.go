package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

type stubGame struct {
	id, title, desc string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type describedGame struct{ stubGame }

func (g *describedGame) Description() string { return g.desc }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return &stubGame{id: "test_b", title: "B"} })
	Register("test_a", func() Game {
		return &describedGame{stubGame{id: "test_a", title: "A", desc: "first"}}
	})

	if !Exists("test_a") || !Exists("test_b") {
		t.Fatal("registered games should exist")
	}

	list := List()
	var ids []string
	for _, info := range list {
		if info.ID == "test_a" || info.ID == "test_b" {
			ids = append(ids, info.ID)
		}
		if info.ID == "test_a" && (info.Title != "A" || info.Description != "first") {
			t.Errorf("info = %+v, expected title A with description", info)
		}
		if info.ID == "test_b" && info.Description != "" {
			t.Errorf("test_b description = %q, expected empty", info.Description)
		}
	}
	if len(ids) != 2 || ids[0] != "test_a" {
		t.Errorf("List() order = %v, expected [test_a test_b]", ids)
	}

	g, err := Create("test_b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "test_b" {
		t.Errorf("Create() id = %q, expected test_b", g.ID())
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
	if Exists("no_such_game") {
		t.Error("Exists() should be false for unknown ids")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })
}
