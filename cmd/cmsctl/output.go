package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"travelcms/gallery"
	"travelcms/models"
)

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatMaybeUint(v *uint) string {
	if v == nil {
		return "-"
	}
	return formatUint(*v)
}

func formatMaybeString(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatIDs(ids []uint) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = formatUint(id)
	}
	return strings.Join(parts, ",")
}

// entityRow renders any catalog model through its embedded Base.
func entityRow(item any) []string {
	rec, ok := item.(models.Record)
	if !ok {
		return []string{"-", "-", "-", "-", "-"}
	}
	name := rec.SlugSource()
	if n, ok := item.(models.Named); ok && n.DisplayName() != "" {
		name = n.DisplayName()
	}
	meta := rec.Meta()
	return []string{
		formatUint(meta.ID),
		meta.Slug,
		name,
		strconv.FormatBool(meta.IsActive),
		formatTime(meta.UpdatedAt),
	}
}

var entityHeaders = []string{"ID", "SLUG", "NAME", "ACTIVE", "UPDATED_AT"}

func printEntity(item any) {
	row := entityRow(item)
	printKV([][2]string{
		{"id", row[0]},
		{"slug", row[1]},
		{"name", row[2]},
		{"active", row[3]},
		{"updated_at", row[4]},
	})
}

func printRelationships(rel models.Relationships) {
	printKV([][2]string{
		{"package_ids", formatIDs(rel.PackageIDs)},
		{"group_trip_ids", formatIDs(rel.GroupTripIDs)},
	})
}

func printMedia(items []models.Media, cover *uint) {
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		mark := ""
		if cover != nil && *cover == m.ID {
			mark = "*"
		}
		rows = append(rows, []string{
			formatUint(m.ID),
			mark,
			m.FilePath,
			formatMaybeString(m.AltText),
			formatMaybeString(m.Caption),
		})
	}
	printTable([]string{"ID", "COVER", "FILE", "ALT", "CAPTION"}, rows)
}

func printUploadResult(res gallery.UploadResult) {
	rows := make([][]string, 0, len(res.Items))
	for _, item := range res.Items {
		status, id := "ok", "-"
		if item.Err != nil {
			status = item.Err.Error()
		} else if item.Media != nil {
			id = formatUint(item.Media.ID)
		}
		rows = append(rows, []string{item.Name, id, status})
	}
	printTable([]string{"FILE", "MEDIA_ID", "RESULT"}, rows)
	fmt.Printf("%d of %d uploaded\n", res.Succeeded, len(res.Items))
	if res.CoverErr != nil {
		fmt.Printf("warning: %v\n", res.CoverErr)
	}
}
