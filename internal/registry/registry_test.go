package registry

import (
	"testing"

	"github.com/mdlunited/arcade/internal/core"
)

type stubGame struct{ id string }

func (s stubGame) ID() string { return s.id }
func (s stubGame) Title() string { return "Stub " + s.id }
func (s stubGame) Reset(core.RuntimeConfig) {}
func (s stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s stubGame) Render(*core.Screen) {}
func (s stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist")
	}
	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("ID() = %q", g.ID())
	}
	if Title("stub_a") != "Stub stub_a" {
		t.Errorf("Title() = %q", Title("stub_a"))
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub_a" {
			found = info.Title == "Stub stub_a"
		}
	}
	if !found {
		t.Error("List() should include stub_a with its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("nope"); err == nil {
		t.Error("Create should fail for an unknown id")
	}
	if Exists("nope") {
		t.Error("Exists should be false for an unknown id")
	}
	if Title("nope") != "nope" {
		t.Error("Title should fall back to the id")
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		id   string
		f    Factory
	}{
		{"duplicate", "stub_dup", func() Game { return stubGame{id: "stub_dup"} }},
		{"mismatched id", "stub_x", func() Game { return stubGame{id: "stub_y"} }},
	}
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register should panic")
				}
			}()
			Register(tc.id, tc.f)
		})
	}
}

func TestListSorted(t *testing.T) {
	Register("stub_z", func() Game { return stubGame{id: "stub_z"} })
	Register("stub_m", func() Game { return stubGame{id: "stub_m"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
}
