package main

import (
	"fmt"
	"io"
	"strings"

	"bandplanner/internal/playability"
	"bandplanner/internal/roster"
)

type memberView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs int    `json:"songs"`
}

type songView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	RequiredMembers []string `json:"requiredMembers"`
	Needs           []string `json:"needs"`
}

type songResultView struct {
	songView
	MissingCount int      `json:"missingCount"`
	Missing      []string `json:"missing"`
}

type groupView struct {
	MissingCount int              `json:"missingCount"`
	Label        string           `json:"label"`
	Songs        []songResultView `json:"songs"`
}

type playableView struct {
	Available []string    `json:"available"`
	Groups    []groupView `json:"groups"`
}

func buildMemberViews(model *roster.Model) []memberView {
	members := model.Members()
	songs := model.Songs()
	views := make([]memberView, 0, len(members))
	for _, member := range members {
		count := 0
		for _, song := range songs {
			if song.Requires(member.ID) {
				count++
			}
		}
		views = append(views, memberView{ID: member.ID, Name: member.Name, Songs: count})
	}
	return views
}

func buildSongView(model *roster.Model, song roster.Song) songView {
	return songView{
		ID:              song.ID,
		Title:           song.Title,
		RequiredMembers: append([]string{}, song.RequiredMembers...),
		Needs:           model.MemberNames(song.RequiredMembers),
	}
}

func buildSongViews(model *roster.Model) []songView {
	songs := model.Songs()
	views := make([]songView, 0, len(songs))
	for _, song := range songs {
		views = append(views, buildSongView(model, song))
	}
	return views
}

func buildPlayableView(model *roster.Model) playableView {
	available := model.Availability()
	results := playability.Compute(model.Songs(), available)
	groups := playability.GroupResults(results)

	view := playableView{
		Available: model.MemberNames(available.IDs()),
		Groups:    make([]groupView, 0, len(groups)),
	}
	for _, group := range groups {
		gv := groupView{
			MissingCount: group.MissingCount,
			Label:        group.Label,
			Songs:        make([]songResultView, 0, len(group.Songs)),
		}
		for _, song := range group.Songs {
			gv.Songs = append(gv.Songs, songResultView{
				songView:     buildSongView(model, song),
				MissingCount: group.MissingCount,
				Missing:      model.MemberNames(playability.Missing(song, available)),
			})
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}

func renderMembers(out io.Writer, views []memberView) {
	if len(views) == 0 {
		fmt.Fprintln(out, "No members yet")
		return
	}
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		rows = append(rows, []string{view.Name, fmt.Sprintf("%d", view.Songs), view.ID})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Name", "Songs", "ID"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
}

func renderSongs(out io.Writer, views []songView) {
	if len(views) == 0 {
		fmt.Fprintln(out, "No songs yet")
		return
	}
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		rows = append(rows, []string{view.Title, joinOrDash(view.Needs), view.ID})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Title", "Needs", "ID"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}

func renderPlayable(out io.Writer, view playableView, colorize bool) {
	fmt.Fprintf(out, "Available: %s\n", joinOrDash(view.Available))
	if len(view.Groups) == 0 {
		fmt.Fprintln(out, "No songs yet")
		return
	}
	for _, group := range view.Groups {
		fmt.Fprintln(out)
		for _, line := range renderGroupHeader(group.Label, group.MissingCount, len(group.Songs), colorize) {
			fmt.Fprintln(out, line)
		}
		rows := make([][]string, 0, len(group.Songs))
		for _, song := range group.Songs {
			rows = append(rows, []string{song.Title, joinOrDash(song.Needs), joinOrDash(song.Missing)})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Title", "Needs", "Missing"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft},
		))
	}
}

func renderPlayableTitles(out io.Writer, songs []roster.Song) {
	if len(songs) == 0 {
		fmt.Fprintln(out, "No playable songs")
		return
	}
	titles := make([]string, 0, len(songs))
	for _, song := range songs {
		titles = append(titles, song.Title)
	}
	fmt.Fprintln(out, strings.Join(titles, "\n"))
}
