// Package dashboard holds the view state of the sales dashboard page: which
// product tab and period are selected, refresh timing, the clock line and
// the hidden-field payloads that feed the charts.
package dashboard

import "strings"

const (
	TabTop    = "top"
	TabBottom = "bottom"

	DisplayTable = "table"
	DisplayNone  = "none"

	tableIDPrefix = "products-"
)

type Tab struct {
	ID       string
	LabelKey string
}

// TabState is the rendered state of one tab button and its table.
type TabState struct {
	ID       string
	LabelKey string
	TableID  string
	Active   bool
	Display  string
}

type Tabs []Tab

var DefaultTabs = Tabs{
	{ID: TabTop, LabelKey: "dashboard.tabs.top"},
	{ID: TabBottom, LabelKey: "dashboard.tabs.bottom"},
}

func TableID(tabID string) string {
	return tableIDPrefix + tabID
}

func (tabs Tabs) Has(id string) bool {
	for _, tab := range tabs {
		if tab.ID == id {
			return true
		}
	}
	return false
}

// Resolve maps a requested tab to a known one, falling back to the first tab.
func (tabs Tabs) Resolve(raw string) string {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	if tabs.Has(candidate) {
		return candidate
	}
	if len(tabs) == 0 {
		return ""
	}
	return tabs[0].ID
}

// Select activates the tab with id and shows only its table. An unknown id
// leaves every button inactive and every table hidden.
func (tabs Tabs) Select(id string) []TabState {
	states := make([]TabState, 0, len(tabs))
	for _, tab := range tabs {
		state := TabState{
			ID:       tab.ID,
			LabelKey: tab.LabelKey,
			TableID:  TableID(tab.ID),
			Display:  DisplayNone,
		}
		if tab.ID == id {
			state.Active = true
			state.Display = DisplayTable
		}
		states = append(states, state)
	}
	return states
}
