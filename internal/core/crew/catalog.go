package crew

// Task is a predefined automation capability that can be bundled into a crew.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var catalog = []Task{
	{
		ID:          "fetch_code",
		Name:        "Fetch Code",
		Description: "Fetches code from Github based on provided requirements",
		Icon:        "📥",
	},
	{
		ID:          "analyze_code",
		Name:        "Code Analyzer",
		Description: "Analyzes code to identify issues and suggest improvements",
		Icon:        "🔎",
	},
	{
		ID:          "send_notification",
		Name:        "Notifier",
		Description: "Sends notifications via Google chat",
		Icon:        "🔔",
	},
	{
		ID:          "create_ticket",
		Name:        "Ticket creator",
		Description: "Creates github issues based on alert details",
		Icon:        "🐞",
	},
}

// Catalog returns the tasks offered for selection, in display order.
// The returned slice is a copy.
func Catalog() []Task {
	out := make([]Task, len(catalog))
	copy(out, catalog)
	return out
}

// LookupTask returns the catalog task with the given id.
func LookupTask(id string) (Task, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// TaskIDs returns the ids of every catalog task.
func TaskIDs() []string {
	ids := make([]string, len(catalog))
	for i, t := range catalog {
		ids[i] = t.ID
	}
	return ids
}
