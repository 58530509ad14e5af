package smoketests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

const (
	fakeEmail    = "owner@kai.local"
	fakePassword = "secret123"
	fakeToken    = "fake-session-token"
)

type fakeEntity map[string]interface{}

// fakeService is an in-memory KAI API that behaves like the real one for everything the tests
// exercise. Responses to specific requests can be replaced with overrides, keyed by
// "METHOD /path".
type fakeService struct {
	lock      sync.Mutex
	nextID    int
	goals     []fakeEntity
	phases    []fakeEntity
	tasks     []fakeEntity
	notes     map[string][]fakeEntity
	habits    []fakeEntity
	habitLogs []fakeEntity
	dailyLogs []fakeEntity
	imported  []interface{}
	overrides map[string]http.Handler
	requests  []string
}

func newFakeService() *fakeService {
	return &fakeService{
		notes:     make(map[string][]fakeEntity),
		overrides: make(map[string]http.Handler),
	}
}

func (f *fakeService) override(method, path string, handler http.Handler) {
	f.overrides[method+" "+path] = handler
}

func (f *fakeService) requestLog() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeService) countRequests(request string) int {
	n := 0
	for _, r := range f.requestLog() {
		if r == request {
			n++
		}
	}
	return n
}

func jsonResponse(status int, body string) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return httphelpers.HandlerWithResponse(status, headers, []byte(body))
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"data": data,
		"meta": map[string]interface{}{"timestamp": "2026-10-18T09:00:00+00:00"},
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": message})
}

func (f *fakeService) newEntity(fields fakeEntity) fakeEntity {
	f.nextID++
	fields["id"] = f.nextID
	return fields
}

func findEntity(list []fakeEntity, id string) (fakeEntity, int) {
	for i, e := range list {
		if fmt.Sprint(e["id"]) == id {
			return e, i
		}
	}
	return nil, -1
}

func filterEntities(list []fakeEntity, key, value string) []fakeEntity {
	ret := []fakeEntity{}
	for _, e := range list {
		if fmt.Sprint(e[key]) == value {
			ret = append(ret, e)
		}
	}
	return ret
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lock.Lock()
	defer f.lock.Unlock()

	key := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, key)
	if h, ok := f.overrides[key]; ok {
		h.ServeHTTP(w, r)
		return
	}

	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	if key == "POST /auth/login" {
		if body["email"] != fakeEmail || body["password"] != fakePassword {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeData(w, http.StatusOK, map[string]interface{}{"token": fakeToken})
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+fakeToken {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	resource := segments[0]
	var id, sub string
	if len(segments) > 1 {
		id = segments[1]
	}
	if len(segments) > 2 {
		sub = segments[2]
	}

	switch {
	case key == "POST /goals":
		goal := f.newEntity(fakeEntity{"name": body["name"], "description": body["description"], "status": "active"})
		f.goals = append(f.goals, goal)
		writeData(w, http.StatusCreated, goal)
	case key == "GET /goals":
		writeData(w, http.StatusOK, append([]fakeEntity{}, f.goals...))
	case resource == "goals" && sub == "" && r.Method == http.MethodGet:
		if goal, _ := findEntity(f.goals, id); goal != nil {
			writeData(w, http.StatusOK, goal)
		} else {
			writeError(w, http.StatusNotFound, "Goal not found")
		}
	case resource == "goals" && sub == "" && r.Method == http.MethodDelete:
		if _, i := findEntity(f.goals, id); i >= 0 {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)
			writeData(w, http.StatusOK, map[string]interface{}{"deleted": true})
		} else {
			writeError(w, http.StatusNotFound, "Goal not found")
		}
	case resource == "goals" && sub == "phases" && r.Method == http.MethodPost:
		if goal, _ := findEntity(f.goals, id); goal == nil {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		phase := f.newEntity(fakeEntity{"goal_id": id, "name": body["name"], "status": body["status"]})
		f.phases = append(f.phases, phase)
		writeData(w, http.StatusCreated, phase)
	case resource == "goals" && sub == "phases" && r.Method == http.MethodGet:
		writeData(w, http.StatusOK, filterEntities(f.phases, "goal_id", id))
	case resource == "phases" && sub == "tasks" && r.Method == http.MethodPost:
		if phase, _ := findEntity(f.phases, id); phase == nil {
			writeError(w, http.StatusNotFound, "Phase not found")
			return
		}
		task := f.newEntity(fakeEntity{"phase_id": id, "title": body["title"], "priority": body["priority"], "status": "todo"})
		f.tasks = append(f.tasks, task)
		writeData(w, http.StatusCreated, task)
	case resource == "phases" && sub == "tasks" && r.Method == http.MethodGet:
		writeData(w, http.StatusOK, filterEntities(f.tasks, "phase_id", id))
	case (resource == "phases" || resource == "tasks") && sub == "" && r.Method == http.MethodPatch:
		list := f.phases
		if resource == "tasks" {
			list = f.tasks
		}
		entity, _ := findEntity(list, id)
		if entity == nil {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		entity["status"] = body["status"]
		writeData(w, http.StatusOK, entity)
	case resource == "phases" && sub == "" && r.Method == http.MethodDelete:
		if _, i := findEntity(f.phases, id); i >= 0 {
			f.phases = append(f.phases[:i], f.phases[i+1:]...)
			writeData(w, http.StatusOK, map[string]interface{}{"deleted": true})
		} else {
			writeError(w, http.StatusNotFound, "Phase not found")
		}
	case resource == "tasks" && sub == "" && r.Method == http.MethodDelete:
		if _, i := findEntity(f.tasks, id); i >= 0 {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			writeData(w, http.StatusOK, map[string]interface{}{"deleted": true})
		} else {
			writeError(w, http.StatusNotFound, "Task not found")
		}
	case (resource == "ideas" || resource == "knowledge" || resource == "important") && id == "":
		if r.Method == http.MethodPost {
			note := f.newEntity(fakeEntity{"title": body["title"], "content": body["content"], "priority": body["priority"]})
			f.notes[resource] = append(f.notes[resource], note)
			writeData(w, http.StatusCreated, note)
		} else {
			writeData(w, http.StatusOK, append([]fakeEntity{}, f.notes[resource]...))
		}
	case key == "POST /habits":
		habit := f.newEntity(fakeEntity{"name": body["name"]})
		f.habits = append(f.habits, habit)
		writeData(w, http.StatusCreated, map[string]interface{}{"habit": habit})
	case key == "GET /habits":
		writeData(w, http.StatusOK, append([]fakeEntity{}, f.habits...))
	case key == "POST /habits/log":
		var habit fakeEntity
		if matches := filterEntities(f.habits, "name", fmt.Sprint(body["name"])); len(matches) > 0 {
			habit = matches[0]
		}
		if habit == nil {
			writeError(w, http.StatusNotFound, "Habit not found")
			return
		}
		entry := f.newEntity(fakeEntity{"habit_id": habit["id"], "status": body["status"], "date": body["date"]})
		f.habitLogs = append(f.habitLogs, entry)
		writeData(w, http.StatusOK, map[string]interface{}{"habit": habit, "log": entry})
	case key == "GET /habits/logs":
		writeData(w, http.StatusOK, append([]fakeEntity{}, f.habitLogs...))
	case key == "POST /daily/log":
		entry := fakeEntity{"log_date": body["log_date"], "summary": body["summary"], "mood": body["mood"], "energy": body["energy"]}
		f.dailyLogs = append(f.dailyLogs, entry)
		writeData(w, http.StatusOK, entry)
	case key == "GET /daily/logs":
		writeData(w, http.StatusOK, append([]fakeEntity{}, f.dailyLogs...))
	case key == "GET /analytics":
		writeData(w, http.StatusOK, map[string]interface{}{
			"goals":         len(f.goals),
			"tasks_total":   len(f.tasks),
			"tasks_done":    len(filterEntities(f.tasks, "status", "done")),
			"task_trend":    []interface{}{},
			"habit_streaks": []interface{}{},
		})
	case key == "GET /backup/export":
		writeData(w, http.StatusOK, map[string]interface{}{
			"filename": "kai-backup-20261018.json",
			"backup": map[string]interface{}{
				"version": 1,
				"tables":  map[string]interface{}{"goals": f.goals, "habits": f.habits},
			},
		})
	case key == "POST /backup/import":
		f.imported = append(f.imported, body["backup"])
		writeData(w, http.StatusOK, map[string]interface{}{
			"restored": map[string]interface{}{"goals": len(f.goals), "habits": len(f.habits)},
		})
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}
