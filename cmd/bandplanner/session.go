package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"bandplanner/internal/config"
	"bandplanner/internal/logging"
	"bandplanner/internal/roster"
	"bandplanner/internal/snapshot"
)

const sessionHelp = `Commands:
  member <name>          add a member
  song <title>           add a song needing the selected members
  select <member>        toggle a member in the song selection
  avail <member>         toggle whether a member is available
  remove-member <member> remove a member from the roster and every song
  remove-song <song>     remove a song
  members | songs        list members or songs
  show                   show songs grouped by missing members
  export [file]          write members and songs as JSON (default ` + snapshot.FileName + `)
  import <file>          replace members and songs from a JSON file
  reset                  delete every member and song
  help                   show this help
  quit                   leave the session`

type importResult struct {
	ticket roster.ImportTicket
	path   string
	snap   roster.Snapshot
	err    error
}

// session is the interactive event loop. Input lines and finished import
// reads are handled one at a time on the loop goroutine.
type session struct {
	model    *roster.Model
	out      io.Writer
	logger   *slog.Logger
	colorize bool
	prompt   bool

	imports  chan importResult
	pending  int
	quitting bool
}

func newSession(model *roster.Model, out io.Writer, logger *slog.Logger) *session {
	return &session{
		model:    model,
		out:      out,
		logger:   logging.NewComponentLogger(logger, "session"),
		colorize: shouldColorize(out),
		imports:  make(chan importResult),
	}
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.prompt = isTerminal(in)
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.showPrompt()
	input := lines
	for {
		if input == nil && s.pending == 0 {
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			s.handle(ctx, line)
			if s.quitting {
				input = nil
				continue
			}
			s.showPrompt()
		case res := <-s.imports:
			s.pending--
			s.finishImport(ctx, res)
		}
	}
}

func (s *session) showPrompt() {
	if s.prompt {
		fmt.Fprint(s.out, "> ")
	}
}

func (s *session) handle(ctx context.Context, line string) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch strings.ToLower(verb) {
	case "":
		return
	case "help", "?":
		fmt.Fprintln(s.out, sessionHelp)
	case "quit", "exit":
		s.quitting = true
	case "member", "add-member":
		err = s.addMember(ctx, arg)
	case "song", "add-song":
		err = s.addSong(ctx, arg)
	case "select":
		err = s.toggleSelected(arg)
	case "avail", "available":
		err = s.toggleAvailable(arg)
	case "remove-member":
		err = s.removeMember(ctx, arg)
	case "remove-song":
		err = s.removeSong(ctx, arg)
	case "members":
		renderMembers(s.out, buildMemberViews(s.model))
	case "songs":
		renderSongs(s.out, buildSongViews(s.model))
	case "show", "playable":
		renderPlayable(s.out, buildPlayableView(s.model), s.colorize)
	case "export":
		err = s.export(arg)
	case "import":
		err = s.startImport(ctx, arg)
	case "reset":
		err = s.reset(ctx)
	default:
		s.notify(noticeWarn, fmt.Sprintf("unknown command %q (try help)", verb))
	}

	if err != nil {
		s.fail(err)
	}
}

func (s *session) addMember(ctx context.Context, name string) error {
	member, added, err := s.model.AddMember(ctx, name)
	if err != nil || !added {
		return err
	}
	s.notify(noticeOK, fmt.Sprintf("added member %s", member.Name))
	return nil
}

func (s *session) addSong(ctx context.Context, title string) error {
	song, added, err := s.model.AddSongFromSelection(ctx, title)
	if err != nil || !added {
		return err
	}
	s.notify(noticeOK, fmt.Sprintf("added song %s (needs %s)", song.Title, joinOrDash(s.model.MemberNames(song.RequiredMembers))))
	return nil
}

func (s *session) toggleSelected(ref string) error {
	member, err := s.model.FindMember(ref)
	if err != nil {
		return err
	}
	s.model.ToggleSelected(member.ID)
	fmt.Fprintf(s.out, "Selected: %s\n", joinOrDash(s.model.MemberNames(s.model.Selected())))
	return nil
}

func (s *session) toggleAvailable(ref string) error {
	member, err := s.model.FindMember(ref)
	if err != nil {
		return err
	}
	s.model.ToggleAvailable(member.ID)
	renderPlayable(s.out, buildPlayableView(s.model), s.colorize)
	return nil
}

func (s *session) removeMember(ctx context.Context, ref string) error {
	member, err := s.model.FindMember(ref)
	if err != nil {
		return err
	}
	if err := s.model.RemoveMember(ctx, member.ID); err != nil {
		return err
	}
	s.notify(noticeOK, fmt.Sprintf("removed member %s", member.Name))
	return nil
}

func (s *session) removeSong(ctx context.Context, ref string) error {
	song, err := s.model.FindSong(ref)
	if err != nil {
		return err
	}
	if err := s.model.RemoveSong(ctx, song.ID); err != nil {
		return err
	}
	s.notify(noticeOK, fmt.Sprintf("removed song %s", song.Title))
	return nil
}

func (s *session) reset(ctx context.Context) error {
	if err := s.model.Reset(ctx); err != nil {
		return err
	}
	s.notify(noticeOK, "removed every member and song")
	return nil
}

func (s *session) export(target string) error {
	if target == "" {
		target = snapshot.FileName
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return err
	}
	snap := s.model.Snapshot()
	if err := snapshot.WriteFile(path, snap); err != nil {
		return err
	}
	s.notify(noticeOK, fmt.Sprintf("exported %s and %s to %s",
		pluralize(len(snap.Members), "member", "members"),
		pluralize(len(snap.Songs), "song", "songs"),
		path))
	return nil
}

// startImport reads the file off the loop. Only the newest import may commit.
func (s *session) startImport(ctx context.Context, target string) error {
	if target == "" {
		return errors.New("import needs a file path")
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return err
	}

	ticket := s.model.BeginImport()
	s.pending++
	go func() {
		snap, err := snapshot.ReadFile(ctx, path)
		select {
		case s.imports <- importResult{ticket: ticket, path: path, snap: snap, err: err}:
		case <-ctx.Done():
		}
	}()
	return nil
}

func (s *session) finishImport(ctx context.Context, res importResult) {
	if !s.model.IsLatestImport(res.ticket) {
		s.notify(noticeInfo, fmt.Sprintf("skipped import of %s: a newer import replaced it", res.path))
		return
	}
	if res.err != nil {
		if errors.Is(res.err, context.Canceled) {
			return
		}
		s.fail(fmt.Errorf("import %s: %w", res.path, res.err))
		return
	}

	err := s.model.CommitImport(ctx, res.ticket, res.snap)
	switch {
	case errors.Is(err, roster.ErrImportSuperseded):
		s.notify(noticeInfo, fmt.Sprintf("skipped import of %s: a newer import replaced it", res.path))
	case err != nil:
		s.fail(fmt.Errorf("import %s: %w", res.path, err))
	default:
		s.notify(noticeOK, fmt.Sprintf("imported %s and %s from %s",
			pluralize(len(res.snap.Members), "member", "members"),
			pluralize(len(res.snap.Songs), "song", "songs"),
			res.path))
	}
}

// fail reports err to the user. Anything that is not a user mistake is also
// logged.
func (s *session) fail(err error) {
	userError := snapshot.IsUserError(err) ||
		errors.Is(err, roster.ErrNotFound) ||
		errors.Is(err, roster.ErrUnknownMember)
	if !userError {
		logging.WarnWithContext(s.logger, "session command failed", "session_command_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "roster left unchanged"),
		)
	}
	s.notify(noticeError, err.Error())
}

func (s *session) notify(kind noticeKind, message string) {
	fmt.Fprintln(s.out, renderNotice(kind, message, s.colorize))
}
