package notification

import (
	"bytes"
	"html/template"
	"time"
)

var bodyTemplate = template.Must(template.New("appointment").Parse(`<h2>{{.Subject}}</h2>
<p>Appointment ID: {{.AppointmentID}}</p>
<p>Date: {{.Date}}</p>
<p>Doctor: Dr. {{.DoctorName}}{{if .DoctorSpecialty}} ({{.DoctorSpecialty}}){{end}}</p>
<p>Reason: {{.Reason}}</p>
{{- if .Status}}
<p>Status: {{.Status}}</p>
{{- end}}
`))

// RenderHTML renders the email body with the date shown in loc.
func RenderHTML(msg Message, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}

	data := struct {
		Message
		Date string
	}{
		Message: msg,
		Date:    msg.Date.In(loc).Format("Monday, January 2, 2006 at 15:04 MST"),
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
