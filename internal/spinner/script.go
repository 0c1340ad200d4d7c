package spinner

import (
	"fmt"
	"strings"
)

// ScriptPath is where the custom element definition is served.
const ScriptPath = "/js/loading-spinner.js"

// Script returns the client-side definition of <loading-spinner>. It draws
// the same style and SVG as HTML, so the server render and later client
// renders are interchangeable. Fragments merged into a live page keep their
// <template shadowrootmode> inert, so the element re-renders from its
// color and size attributes and drops any such template child.
func Script() string {
	svg := fmt.Sprintf(svgTemplate, "${color}", "${size}")
	return strings.Join([]string{
		`const esc = (s) => String(s).replace(/&/g, '&amp;').replace(/'/g, '&#39;').replace(/</g, '&lt;').replace(/>/g, '&gt;').replace(/"/g, '&#34;');`,
		``,
		`class LoadingSpinner extends HTMLElement {`,
		`  static get observedAttributes() { return ['` + AttrColor + `', '` + AttrSize + `']; }`,
		``,
		`  constructor() {`,
		`    super();`,
		`    if (!this.shadowRoot) this.attachShadow({ mode: 'open' });`,
		`    this.observer = new MutationObserver(() => this.dropTemplates());`,
		`  }`,
		``,
		`  connectedCallback() {`,
		`    this.observer.observe(this, { childList: true });`,
		`    this.dropTemplates();`,
		`    this.render();`,
		`  }`,
		``,
		`  disconnectedCallback() { this.observer.disconnect(); }`,
		``,
		`  attributeChangedCallback(name, oldValue, newValue) {`,
		`    if (oldValue !== newValue) this.render();`,
		`  }`,
		``,
		`  dropTemplates() {`,
		`    for (const t of this.querySelectorAll(':scope > template')) t.remove();`,
		`  }`,
		``,
		`  render() {`,
		`    const color = esc(this.getAttribute('` + AttrColor + `') || '` + DefaultColor + `');`,
		`    const size = esc(this.getAttribute('` + AttrSize + `') || '` + DefaultSize + `');`,
		"    this.shadowRoot.innerHTML = `" + shadowStyle + svg + "`;",
		`  }`,
		`}`,
		``,
		`if (!customElements.get('` + TagName + `')) customElements.define('` + TagName + `', LoadingSpinner);`,
		``,
	}, "\n")
}
