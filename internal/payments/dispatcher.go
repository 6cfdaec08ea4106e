package payments

import (
	"context"
	"html/template"
	"io"

	pkgerrors "github.com/campmart-lk/checkout/pkg/errors"
	"github.com/campmart-lk/checkout/pkg/payhere"
)

// GatewayTransport hands a signed payload off toward the gateway. Dispatch
// resolves when the handoff artifact has been produced, never when the
// payment itself completes.
type GatewayTransport interface {
	Dispatch(ctx context.Context, w io.Writer, params payhere.CheckoutParams) error
}

// handoffPage renders a self-submitting form so the browser carries the
// signed fields to the hosted checkout. Only non-empty fields are emitted.
const handoffPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Redirecting to payment…</title>
</head>
<body onload="document.getElementById('gateway-form').submit()">
<p>Redirecting you to the secure payment page…</p>
<form id="gateway-form" method="post" action="{{.Action}}">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body>
</html>
`

// FormPostDispatcher is the production GatewayTransport: it writes the
// auto-submitting HTML form targeting the hosted checkout URL.
type FormPostDispatcher struct {
	action string
	tmpl   *template.Template
}

// NewFormPostDispatcher builds the form-post transport for the given
// checkout URL.
func NewFormPostDispatcher(checkoutURL string) (*FormPostDispatcher, error) {
	if checkoutURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout url required")
	}
	tmpl, err := template.New("handoff").Parse(handoffPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parsing handoff template")
	}
	return &FormPostDispatcher{action: checkoutURL, tmpl: tmpl}, nil
}

// Dispatch renders the handoff page into w.
func (d *FormPostDispatcher) Dispatch(ctx context.Context, w io.Writer, params payhere.CheckoutParams) error {
	data := struct {
		Action string
		Fields []payhere.Field
	}{
		Action: d.action,
		Fields: params.Fields(),
	}
	if err := d.tmpl.Execute(w, data); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeGatewayDispatch, err, "rendering gateway handoff page")
	}
	return nil
}
