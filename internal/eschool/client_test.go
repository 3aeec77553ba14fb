package eschool

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) { o.events = append(o.events, e) }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	obs := &recordingObserver{}
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/ec-server"
	c, err := NewClient(cfg, obs)
	require.NoError(t, err)
	return c, obs
}

func TestClient_Login_StoresSessionCookie(t *testing.T) {
	c, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ec-server/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ivanov", r.PostForm.Get("username"))
		assert.Equal(t, "abc123", r.PostForm.Get("password"))

		var device domain.DevicePayload
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("device")), &device))
		assert.Equal(t, "web", device.CliType)
		assert.Nil(t, device.CliOsVer)

		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "ru-RU,ru;q=0.9", r.Header.Get("Accept-Language"))

		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "sess-1", Path: "/"})
		w.Write([]byte("ok"))
	})

	err := c.Login(context.Background(), "ivanov", "abc123", domain.DevicePayload{CliType: "web"})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", c.SessionID())

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "/login", obs.events[0].Endpoint)
	assert.Equal(t, http.StatusOK, obs.events[0].Status)
}

func TestClient_Login_FailureBodies(t *testing.T) {
	for _, body := range []string{"1", "3", "4"} {
		t.Run(body, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			err := c.Login(context.Background(), "u", "h", domain.DevicePayload{})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestClient_Login_NoCookieIsInvalidCredentials(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	})
	err := c.Login(context.Background(), "u", "h", domain.DevicePayload{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClient_Login_ServiceUnavailable(t *testing.T) {
	c, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := c.Login(context.Background(), "u", "h", domain.DevicePayload{})
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "UNAVAILABLE", obs.events[0].ErrorCode)
}

func TestClient_RequiresSession(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	_, err := c.State(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, called)
}

func TestClient_State_SendsCookieAndDecodes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(SessionCookie)
		require.NoError(t, err)
		assert.Equal(t, "stored", ck.Value)
		w.Write([]byte(`{"userId": 42, "user": {"prsId": 7, "username": "ivanov"},
			"profile": {"firstName": "Ivan", "lastName": "Ivanov"}}`))
	})
	c.SetSession("stored")

	st, err := c.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), st.UserID)
	assert.Equal(t, int64(7), st.User.PrsID)
	require.NotNil(t, st.Profile)
	assert.Equal(t, "Ivanov Ivan", st.Profile.FullName())
}

func TestClient_State_Unauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		c.SetSession("expired")
		_, err := c.State(context.Background())
		assert.ErrorIs(t, err, ErrNotAuthenticated, "status %d", status)
	}
}

func TestClient_UnexpectedStatus(t *testing.T) {
	c, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c.SetSession("s")
	_, err := c.Threads(context.Background(), false, 0, 20)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	require.Len(t, obs.events, 1)
	assert.Equal(t, http.StatusInternalServerError, obs.events[0].Status)
}

func TestClient_InvalidResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	})
	c.SetSession("s")
	_, err := c.ClassByUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Timeout_SingleAttempt(t *testing.T) {
	attempts := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		time.Sleep(1500 * time.Millisecond)
	})
	c.cfg.TimeoutMs = 1000
	c.SetSession("s")

	_, err := c.State(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, attempts)
}

func TestClient_Unavailable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1/ec-server" // nothing listening
	c, err := NewClient(cfg, nil)
	require.NoError(t, err)
	c.SetSession("s")

	_, err = c.State(context.Background())
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestNewClient_RejectsBadBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"}, nil)
	assert.Error(t, err)
}

func TestClient_Threads_Query(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ec-server/chat/threads", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("newOnly"))
		assert.Equal(t, "5", r.URL.Query().Get("row"))
		assert.Equal(t, "10", r.URL.Query().Get("rowsCount"))
		w.Write([]byte(`[{"threadId": 3, "subject": "", "senderFio": "Petrova", "msgPreview": "hi"}]`))
	})
	c.SetSession("s")

	threads, err := c.Threads(context.Background(), true, 5, 10)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "Petrova", threads[0].Title())
}

func TestClient_Messages_UsesPut(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "9", r.URL.Query().Get("threadId"))
		assert.Equal(t, "false", r.URL.Query().Get("getNew"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"msgNums":null,"searchText":null}`, string(body))
		w.Write([]byte(`[{"msgId": 2, "msg": "second", "createDate": 2000}, {"msgId": 1, "msg": "first", "createDate": 1000}]`))
	})
	c.SetSession("s")

	msgs, err := c.Messages(context.Background(), 9, 0, 25)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "second", msgs[0].Text)
}

func TestClient_SendMessage_Multipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "9", r.FormValue("threadId"))
		assert.Equal(t, "hello", r.FormValue("msgText"))
		assert.NotEmpty(t, r.FormValue("msgUID"))
		w.Write([]byte(`{}`))
	})
	c.SetSession("s")

	require.NoError(t, c.SendMessage(context.Background(), 9, "hello"))
}

func TestClient_SaveThread(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(55), req["interlocutor"])
		assert.Equal(t, float64(2), req["isAllowReplay"])
		assert.Nil(t, req["threadId"])
		w.Write([]byte("731"))
	})
	c.SetSession("s")

	id, err := c.SaveThread(context.Background(), 55)
	require.NoError(t, err)
	assert.Equal(t, int64(731), id)
}

func TestClient_ResultEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ec-server/student/getDiaryUnits/", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("userId"))
		assert.Equal(t, "100", r.URL.Query().Get("eiId"))
		w.Write([]byte(`{"result": [{"unitId": 1, "unitName": "Math", "overMark": 4.5, "totalMark": 5}]}`))
	})
	c.SetSession("s")

	units, err := c.DiaryUnits(context.Background(), 42, 100)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "Math", units[0].UnitName)
	assert.Equal(t, "5", units[0].TotalMark.String())
}

func TestClient_Periods(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ec-server/dict/periods/0", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("groupId"))
		w.Write([]byte(`{"id": 1, "name": "2024/2025", "date1": 1000, "date2": 2000,
			"items": [{"id": 2, "parentId": 1, "name": "Q1", "date1": 1000, "date2": 1500}]}`))
	})
	c.SetSession("s")

	pc, err := c.Periods(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "2024/2025", pc.Name)
	require.Len(t, pc.Items, 1)
	assert.Equal(t, domain.Millis(1500), pc.Items[0].EndDate)
}

func TestClient_GroupsTree_Raw(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("bEmployees"))
		assert.Equal(t, "false", r.URL.Query().Get("bAllTypes"))
		w.Write([]byte(`[{"orgName":"School"}]`))
	})
	c.SetSession("s")

	raw, err := c.GroupsTree(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"orgName":"School"}]`, string(raw))
}

func TestClient_LPartListPupil_Query(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "100", q.Get("begDate"))
		assert.Equal(t, "200", q.Get("endDate"))
		assert.Equal(t, "0", q.Get("isOdod"))
		assert.Equal(t, "7", q.Get("prsId"))
		assert.Equal(t, "88749", q.Get("yearId"))
		w.Write([]byte(`{"result": [{"passDt": 150, "unitName": "History"}]}`))
	})
	c.SetSession("s")

	tasks, err := c.LPartListPupil(context.Background(), TaskQuery{From: 100, To: 200, PrsID: 7, YearID: 88749})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "History", tasks[0].UnitName)
}

func TestClient_SetSessionEmptyClears(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	c.SetSession("abc")
	assert.Equal(t, "abc", c.SessionID())
	c.SetSession("")
	assert.Equal(t, "", c.SessionID())
}

func TestClient_SetSessionEmptyClearsSubPathCookie(t *testing.T) {
	logins := 0
	var sentCookie bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ec-server/state" {
			_, err := r.Cookie(SessionCookie)
			sentCookie = err == nil
			w.Write([]byte(`{}`))
			return
		}
		logins++
		if logins == 1 {
			http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "sess-1", Path: "/ec-server"})
			w.Write([]byte("ok"))
			return
		}
		w.Write([]byte("error page"))
	})

	require.NoError(t, c.Login(context.Background(), "u", "h", domain.DevicePayload{}))
	require.Equal(t, "sess-1", c.SessionID())

	c.SetSession("")
	assert.Equal(t, "", c.SessionID())
	_, err := c.State(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, sentCookie)

	// A refused login must not inherit the old session.
	err = c.Login(context.Background(), "u", "h", domain.DevicePayload{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "", c.SessionID())
}

func TestClient_SetSessionReplacesSubPathCookie(t *testing.T) {
	var got []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ec-server/login" {
			http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "sess-1", Path: "/ec-server"})
			w.Write([]byte("ok"))
			return
		}
		for _, ck := range r.Cookies() {
			if ck.Name == SessionCookie {
				got = append(got, ck.Value)
			}
		}
		w.Write([]byte(`{}`))
	})

	require.NoError(t, c.Login(context.Background(), "u", "h", domain.DevicePayload{}))
	c.SetSession("stored")
	_, err := c.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"stored"}, got)
}
