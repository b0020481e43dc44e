package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/yama6a/pathe-portal/internal/pkg/model"
)

const (
	showTimeLayout = "2006-01-02 15:04"
	pickupLayout   = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func renderHistory(w io.Writer, items []model.HistoryItem) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Show time", "Theater", "Room", "Title", "Tickets", "Status", "Picked up"})
	for _, item := range items {
		tickets, status, pickup := "", "", ""
		if r := item.Reservation; r != nil {
			if r.TicketCount() > 0 {
				tickets = strconv.Itoa(r.TicketCount())
			}
			status = string(r.Status())
			if p, ok := r.PickupTime(); ok {
				pickup = p.Format(pickupLayout)
			}
		}
		t.AppendRow(table.Row{
			item.ShowTime.Format(showTimeLayout),
			item.Screen.Theater,
			item.Screen.Room,
			item.Event.Title,
			tickets,
			status,
			pickup,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(items)})
	t.Render()
}

func renderProfile(w io.Writer, pd *model.PersonalData) {
	birthDate := ""
	if d, ok := pd.BirthDate(); ok {
		birthDate = d.Format(dateLayout)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{model.FieldUsername, pd.Username()},
		{model.FieldPassword, maskPassword(pd.Password())},
		{model.FieldEmail, pd.Email()},
		{model.FieldGender, pd.Gender().String()},
		{"Name", strings.Join(nonEmpty(pd.FirstName(), pd.Insertion(), pd.LastName()), " ")},
		{"Address", strings.Join(nonEmpty(pd.Street(), pd.HouseNumber(), pd.HouseNumberAddition()), " ")},
		{model.FieldPostalCode, pd.PostalCode()},
		{model.FieldCity, pd.City()},
		{model.FieldCountry, string(pd.Country())},
		{model.FieldMobilePhone, pd.MobilePhone()},
		{"BirthDate", birthDate},
		{model.FieldNewsletter, pd.Newsletter()},
	})
	t.Render()
}

func renderCards(w io.Writer, cards []model.Card) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Number", "Type", "Balance", "Valid until", "Blocked"})
	for _, c := range cards {
		validUntil := ""
		if c.ValidUntil != nil {
			validUntil = c.ValidUntil.Format(dateLayout)
		}
		t.AppendRow(table.Row{c.Number, string(c.Type), c.Balance, validUntil, c.Blocked})
	}
	t.Render()
}

func maskPassword(password string) string {
	if password == "" {
		return ""
	}
	return "********"
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
