package ui

import (
	"bytes"
	"html/template"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div class="booking-confirmation">
	<i class="fas fa-check-circle"></i>
	<h2>预订成功！</h2>
	<p>您的座位已确认，请保存好预订码</p>
	<div class="booking-code">
		<p>预订码</p>
		<h1>{{.BookingCode}}</h1>
	</div>
	<p><strong>已选座位：</strong>{{.SeatsText}}</p>
	<p><button class="btn copy-code" data-code="{{.BookingCode}}"><i class="fas fa-copy"></i> 复制预订码</button></p>
	<p><a href="/" class="btn">返回首页</a></p>
</div>
`))

var bookingTableTmpl = template.Must(template.New("bookings").Parse(`<table class="booking-table">
	<tr><th>预订码</th><th>姓名</th><th>手机</th><th>座位号</th><th>预订时间</th></tr>
{{- range .}}
	<tr>
		<td><strong>{{.Code}}</strong></td>
		<td>{{.Name}}</td>
		<td>{{.Phone}}</td>
		<td>{{.Seats}}</td>
		<td>{{.CreatedAt}}</td>
	</tr>
{{- end}}
</table>
`))

var noticeTmpl = template.Must(template.New("notice").Parse(`<p class="{{.Class}}">{{.Text}}</p>`))

func renderTemplate(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderNotice(class, text string) string {
	out, err := renderTemplate(noticeTmpl, struct{ Class, Text string }{class, text})
	if err != nil {
		return template.HTMLEscapeString(text)
	}
	return out
}
