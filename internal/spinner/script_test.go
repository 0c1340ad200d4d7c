package spinner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScript_MatchesServerMarkup(t *testing.T) {
	js := Script()

	assert.Contains(t, js, shadowStyle+fmt.Sprintf(svgTemplate, "${color}", "${size}"))
	assert.Contains(t, js, `static get observedAttributes() { return ['color', 'size']; }`)
	assert.Contains(t, js, `|| '#f97316'`)
	assert.Contains(t, js, `|| '50'`)
	assert.Contains(t, js, `customElements.define('loading-spinner', LoadingSpinner)`)
	// merged fragments carry an inert shadow template that must not linger
	assert.Contains(t, js, `:scope > template`)
}
