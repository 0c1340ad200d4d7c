package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// SpinnerSlotID is the element the spinner is merged into.
const SpinnerSlotID = "spinner-slot"

// SpinnerSlot wraps a spinner so it can be replaced by id.
func SpinnerSlot(spinner templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+SpinnerSlotID+`" class="flex justify-center p-6">`); err != nil {
			return err
		}
		if err := spinner.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
