package status

import (
	"encoding/json"
	"strings"
)

// ScriptPath is where the badge's client script is served.
const ScriptPath = "/js/status-indicator.js"

// sseDown lists the datastar stream lifecycle events after which the page
// no longer receives link events.
var sseDown = []string{"error", "retrying", "retries-failed", "finished"}

// Script returns the client script that turns the badge red when the page's
// own event stream drops. Server-sent badges take over again once the
// stream reconnects.
func Script() string {
	classes := make(map[Status]string, len(Notifications))
	for _, n := range Notifications {
		s := StatusFor(n)
		classes[s] = ColourClass(s)
	}
	classJSON, _ := json.Marshal(classes)
	colourJSON, _ := json.Marshal(ColourClasses)
	downJSON, _ := json.Marshal(sseDown)

	return strings.Join([]string{
		`const classes = ` + string(classJSON) + `;`,
		`const colours = ` + string(colourJSON) + `;`,
		`const down = ` + string(downJSON) + `;`,
		``,
		`function updateStatus(status) {`,
		`  const circle = document.getElementById('` + CircleID + `');`,
		`  const ping = document.getElementById('` + PingID + `');`,
		`  if (!circle || !ping) return;`,
		`  for (const el of [circle, ping]) {`,
		`    el.classList.remove(...colours);`,
		`    if (classes[status]) el.classList.add(classes[status]);`,
		`  }`,
		`}`,
		``,
		`document.addEventListener('datastar-sse', (evt) => {`,
		`  if (evt.detail && down.includes(evt.detail.type)) updateStatus('` + string(Closed) + `');`,
		`});`,
		``,
	}, "\n")
}
