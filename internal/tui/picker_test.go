package tui

import (
	"strings"
	"testing"

	"github.com/flingdev/fling/internal/catalog"
	"github.com/flingdev/fling/internal/config"
	"github.com/flingdev/fling/internal/launch"
)

func testModel(apps []catalog.App, hist map[string]uint64) Model {
	cfg := config.Default()
	cfg.Search.MinScore = 0
	return New(cfg, apps, hist, &launch.Dispatcher{Terminal: cfg.General.Terminal}, nil)
}

func TestNewRanksRecentFirst(t *testing.T) {
	apps := []catalog.App{
		{Name: "Firefox", Strategy: catalog.Direct{Argv: []string{"firefox"}}},
		{Name: "GIMP", Strategy: catalog.Direct{Argv: []string{"gimp"}}},
	}
	m := testModel(apps, map[string]uint64{"GIMP": 9000})

	if len(m.matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(m.matches))
	}
	if m.matches[0].App.Name != "GIMP" {
		t.Errorf("first match = %q, want the recently launched app", m.matches[0].App.Name)
	}
}

func TestRerankResetsOutOfRangeCursor(t *testing.T) {
	apps := []catalog.App{
		{Name: "Alpha", Strategy: catalog.Direct{Argv: []string{"alpha"}}},
		{Name: "Beta", Strategy: catalog.Direct{Argv: []string{"beta"}}},
	}
	m := testModel(apps, nil)
	m.cursor = 1

	m.input.SetValue("alpha")
	m.rerank()
	if len(m.matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(m.matches))
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want reset to 0", m.cursor)
	}
}

func TestRebuiltMsgSwapsCatalog(t *testing.T) {
	m := testModel([]catalog.App{
		{Name: "Old", Strategy: catalog.Direct{Argv: []string{"old"}}},
	}, nil)

	updated, _ := m.Update(rebuiltMsg{apps: []catalog.App{
		{Name: "New", Strategy: catalog.Direct{Argv: []string{"new"}}},
	}})
	m = updated.(Model)

	if len(m.matches) != 1 || m.matches[0].App.Name != "New" {
		t.Errorf("matches after rebuild = %v", m.matches)
	}
}

func TestLaunchSelectionFailureShowsStatus(t *testing.T) {
	m := testModel([]catalog.App{
		{Name: "Ghost", Strategy: catalog.Direct{Argv: []string{"/no/such/binary"}}},
	}, nil)

	updated, _ := m.launchSelection()
	m = updated.(Model)

	if m.Launched() {
		t.Error("failed launch reported as success")
	}
	if m.quitting {
		t.Error("picker must stay open after a failed launch")
	}
	if !strings.Contains(m.status, "Ghost") {
		t.Errorf("status = %q, want a launch error naming the app", m.status)
	}
}

func TestLaunchSelectionSuccessQuits(t *testing.T) {
	m := testModel([]catalog.App{
		{Name: "True", Strategy: catalog.Direct{Argv: []string{"true"}}},
	}, nil)

	updated, _ := m.launchSelection()
	m = updated.(Model)

	if !m.Launched() || !m.quitting {
		t.Error("successful launch should close the picker")
	}
}

func TestViewListsMatches(t *testing.T) {
	m := testModel([]catalog.App{
		{Name: "Firefox", Description: "Browse the web", Strategy: catalog.Direct{Argv: []string{"firefox"}}},
		{Name: "Htop", Terminal: true, Strategy: catalog.Direct{Argv: []string{"htop"}}},
	}, nil)

	view := m.viewContent()
	if !strings.Contains(view, "Firefox") || !strings.Contains(view, "Htop") {
		t.Errorf("view missing entries:\n%s", view)
	}
	if !strings.Contains(view, "[terminal]") {
		t.Error("terminal apps should be marked in the list")
	}
}

func TestViewEmptyCatalog(t *testing.T) {
	m := testModel(nil, nil)
	if !strings.Contains(m.viewContent(), "no matches") {
		t.Error("empty catalog should render a placeholder")
	}
}
