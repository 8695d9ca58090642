package cmd

import (
	"io"
	"text/template"

	"github.com/lafise/go-fp-transfer/internal/common/dateutil"
	"github.com/lafise/go-fp-transfer/internal/models"

	"github.com/Masterminds/sprig"
)

const accountsTemplate = `{{ with .User }}{{ .FullName }}
{{ end }}{{ range .Accounts }}{{ printf "%-16d" .AccountNumber }} {{ printf "%-20s" (trunc 20 .Alias) }} {{ symbol .Currency }} {{ .Balance.StringFixed 2 }}
{{ else }}no accounts loaded
{{ end }}{{ with .Error }}error: {{ . }}
{{ end }}`

const transactionsTemplate = `{{ range . }}{{ printf "%-10s" (fmtdate .TransactionDate "2006-01-02") }} {{ printf "%-6s" .TransactionType }} {{ symbol .Amount.Currency }} {{ printf "%12s" (.Amount.Value.StringFixed 2) }}  {{ default .BankDescription .Description }}
{{ else }}no transactions
{{ end }}`

const conversionTemplate = `{{ symbol (toString .From) }} {{ .Amount.StringFixed 2 }} = {{ symbol (toString .To) }} {{ .Received.StringFixed 2 }}
`

const receiptTemplate = `Transfer confirmed
  number      : {{ .TransactionNumber }}
  type        : {{ .TransactionType }}
  date        : {{ .SubmittedAt.Format "2006-01-02 15:04:05" }}
  from        : {{ .Origin.AccountNumber }}{{ with .Origin.Alias }} ({{ . }}){{ end }}
  to          : {{ .Destination }}
  debited     : {{ symbol .Debit.Currency }} {{ .Debit.Value.StringFixed 2 }}
{{- with .Credit }}
  credited    : {{ symbol .Currency }} {{ .Value.StringFixed 2 }}
{{- end }}
  concept     : {{ default "-" .Concept }}
  reference   : {{ default "-" .Reference }}
{{- with .ConfirmationEmail }}
  receipt to  : {{ . }}
{{- end }}
`

var templates = template.Must(template.New("cli").
	Funcs(sprig.TxtFuncMap()).
	Funcs(template.FuncMap{
		"symbol": func(currency string) string {
			return models.NormalizeCurrency(currency).Symbol()
		},
		"fmtdate": dateutil.FormatNullableTime,
	}).
	Parse(`{{ define "accounts" }}` + accountsTemplate + `{{ end }}` +
		`{{ define "transactions" }}` + transactionsTemplate + `{{ end }}` +
		`{{ define "conversion" }}` + conversionTemplate + `{{ end }}` +
		`{{ define "receipt" }}` + receiptTemplate + `{{ end }}`))

func render(w io.Writer, name string, data interface{}) error {
	return templates.ExecuteTemplate(w, name, data)
}
