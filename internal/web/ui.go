package web

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"duo-tasks/internal/api"
	"duo-tasks/internal/domain"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	boardSelector = "#board"
	flashSelector = "#flash"
)

// uiSignals mirrors the data-signals declared on the page.
type uiSignals struct {
	User        string `json:"user"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImportJSON  string `json:"importJson"`
	UserName    string `json:"userName"`
}

func (sig uiSignals) currentUser() domain.UserID {
	id, err := domain.ParseUserID(sig.User)
	if err != nil {
		return domain.User1
	}
	return id
}

type pageVM struct {
	Title       string
	DatastarURL string
	PollAttr    template.HTMLAttr
	Board       template.HTML
}

type cardVM struct {
	api.TaskView
	Mine      bool
	Running   bool
	StartISO  string
	ElapsedMS int64
}

type boardVM struct {
	User     api.UserView
	Other    api.UserView
	Mine     []cardVM
	Theirs   []cardVM
	Progress []api.ProgressView
}

// pollAttr builds the datastar interval attribute. The duration lives in the
// attribute name, which templates cannot fill in.
func pollAttr(interval time.Duration) template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(`data-on-interval__duration.%dms="@get('/ui/board')"`, interval.Milliseconds()))
}

func priorityLabel(p int) string {
	return domain.Priority(p).String()
}

func (s *Server) buildBoard(r *http.Request, current domain.UserID) (boardVM, error) {
	board, err := s.api.Board(r.Context())
	if err != nil {
		return boardVM{}, err
	}
	progress, err := s.api.Progress(r.Context())
	if err != nil {
		return boardVM{}, err
	}

	vm := boardVM{
		Mine:     []cardVM{},
		Theirs:   []cardVM{},
		Progress: progress,
	}
	for _, u := range board.Users {
		switch domain.UserID(u.ID) {
		case current:
			vm.User = u
		case current.Other():
			vm.Other = u
		}
	}

	now := s.now()
	for _, task := range board.Tasks {
		card := cardVM{
			TaskView:  task,
			Mine:      task.AssignedTo == string(current),
			Running:   task.StartTime != nil,
			ElapsedMS: task.TimeSpent,
		}
		if task.StartTime != nil {
			card.StartISO = task.StartTime.UTC().Format(time.RFC3339Nano)
			if d := now.Sub(*task.StartTime); d > 0 {
				card.ElapsedMS += d.Milliseconds()
			}
		}
		if card.Mine {
			vm.Mine = append(vm.Mine, card)
		} else {
			vm.Theirs = append(vm.Theirs, card)
		}
	}
	return vm, nil
}

func (s *Server) renderBoard(r *http.Request, current domain.UserID) (string, error) {
	vm, err := s.buildBoard(r, current)
	if err != nil {
		return "", err
	}
	return s.renderTemplate("board", vm)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	board, err := s.renderBoard(r, domain.User1)
	if err != nil {
		writeError(w, r, err)
		return
	}

	html, err := s.renderTemplate("page", pageVM{
		Title:       "Duo Tasks",
		DatastarURL: s.cfg.UI.DatastarURL,
		PollAttr:    pollAttr(s.cfg.UI.PollInterval),
		Board:       template.HTML(board),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// patchBoard sends a fresh board, or a flash message when err is set.
func (s *Server) patchBoard(sse *datastar.ServerSentEventGenerator, r *http.Request, sig uiSignals, actionErr error) {
	flash := ""
	if actionErr != nil {
		if statusFor(actionErr) >= http.StatusInternalServerError {
			slog.Error("board action failed", slog.String("path", r.URL.Path), slog.String("error", actionErr.Error()))
		}
		flash = clientMessage(actionErr)
	}
	if html, err := s.renderTemplate("flash", flash); err == nil {
		_ = sse.PatchElements(html, datastar.WithSelector(flashSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
	}

	html, err := s.renderBoard(r, sig.currentUser())
	if err != nil {
		s.flashRenderError(sse, err)
		return
	}
	_ = sse.PatchElements(html, datastar.WithSelector(boardSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
}

func (s *Server) flashRenderError(sse *datastar.ServerSentEventGenerator, err error) {
	slog.Error("failed to render board", slog.String("error", err.Error()))
	if html, ferr := s.renderTemplate("flash", internalErrorMessage); ferr == nil {
		_ = sse.PatchElements(html, datastar.WithSelector(flashSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
	}
}

func readSignals(r *http.Request) (uiSignals, error) {
	var sig uiSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		return uiSignals{}, err
	}
	return sig, nil
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		http.Error(w, "invalid signals", http.StatusBadRequest)
		return
	}

	html, err := s.renderBoard(r, sig.currentUser())
	sse := datastar.NewSSE(w, r)
	if err != nil {
		s.flashRenderError(sse, err)
		return
	}
	_ = sse.PatchElements(html, datastar.WithSelector(boardSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
}

func (s *Server) handleUICreate(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		http.Error(w, "invalid signals", http.StatusBadRequest)
		return
	}

	_, actionErr := s.api.CreateTask(r.Context(), api.CreateTaskRequest{
		Title:       sig.Title,
		Description: sig.Description,
		UserID:      string(sig.currentUser()),
	})

	sse := datastar.NewSSE(w, r)
	if actionErr == nil {
		_ = sse.MarshalAndPatchSignals(map[string]any{"title": "", "description": ""})
	}
	s.patchBoard(sse, r, sig, actionErr)
}

func (s *Server) handleUIAction(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		http.Error(w, "invalid signals", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	user := sig.currentUser()
	ctx := r.Context()

	var actionErr error
	switch action := r.PathValue("action"); action {
	case "delete":
		actionErr = s.api.DeleteTask(ctx, id, string(user))
	case "transfer":
		_, actionErr = s.api.TransferTask(ctx, id, api.TransferRequest{
			FromUserID: string(user),
			ToUserID:   string(user.Other()),
		})
	case api.ActionStart, api.ActionPause, api.ActionComplete, api.ActionUndo, api.ActionReset:
		_, actionErr = s.api.PatchTask(ctx, id, api.PatchTaskRequest{UserID: string(user), Action: action})
	default:
		http.NotFound(w, r)
		return
	}

	s.patchBoard(datastar.NewSSE(w, r), r, sig, actionErr)
}

func (s *Server) handleUIRename(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		http.Error(w, "invalid signals", http.StatusBadRequest)
		return
	}

	_, actionErr := s.api.RenameUser(r.Context(), r.PathValue("id"), sig.UserName)

	sse := datastar.NewSSE(w, r)
	if actionErr == nil {
		_ = sse.MarshalAndPatchSignals(map[string]any{"userName": ""})
	}
	s.patchBoard(sse, r, sig, actionErr)
}

func (s *Server) handleUIImport(w http.ResponseWriter, r *http.Request) {
	sig, err := readSignals(r)
	if err != nil {
		http.Error(w, "invalid signals", http.StatusBadRequest)
		return
	}

	_, actionErr := s.api.ImportTasks(r.Context(), sig.ImportJSON)

	sse := datastar.NewSSE(w, r)
	if actionErr == nil {
		_ = sse.MarshalAndPatchSignals(map[string]any{"importJson": ""})
	}
	s.patchBoard(sse, r, sig, actionErr)
}
