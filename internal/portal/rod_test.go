package portal

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gradefetch-backend/internal/components/telemetry"
	"gradefetch-backend/internal/semester"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/require"
)

const fakeLoginPage = `<!DOCTYPE html>
<html>
<head>
<style>
@font-face { font-family: "Portal"; src: url("/fonts/portal.woff2"); }
body { font-family: "Portal", sans-serif; }
</style>
</head>
<body>
<a href="#" id="logins">Logins</a>
<a href="/StudentLogin.aspx">Student Login</a>
</body>
</html>`

const fakeStudentLoginPage = `<!DOCTYPE html>
<html>
<body>
<form method="get" action="/Student.aspx">
	<input id="txtUserId" name="txtUserId" type="text">
	<input id="txtPwd" name="txtPwd" type="password">
	<input id="btnLogin" type="submit" value="Login">
</form>
</body>
</html>`

const fakeStudentPage = `<!DOCTYPE html>
<html>
<body>
<span id="lblStudName">RAVI KUMAR</span>
<a href="#">Marks Details</a>
<a href="/Semwise.aspx">Overall Marks - Semwise</a>
</body>
</html>`

func fakeSemwisePage() string {
	page := "<!DOCTYPE html><html><body><span id=\"lblStudName\">RAVI KUMAR</span>"
	for i := 1; i <= 8; i++ {
		page += fmt.Sprintf(
			`<input type="button" id="cpStudCorner_btn%d" value="SEM %d" onclick="location.href='/Results.aspx?sem=%d'">`,
			i, i, i,
		)
	}
	return page + "</body></html>"
}

type fakePortal struct {
	server    *httptest.Server
	fontHits  atomic.Int64
	mutex     sync.Mutex
	userID    string
	password  string
	semesters []string
}

func newFakePortal(t testing.TB) *fakePortal {
	results, err := os.ReadFile("../grades/testdata/semwise.html")
	require.NoError(t, err)

	portal := &fakePortal{}
	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("content-type", "text/html; charset=utf-8")
			fmt.Fprint(w, body)
		}
	}
	mux.HandleFunc("/Login.aspx", serve(fakeLoginPage))
	mux.HandleFunc("/StudentLogin.aspx", serve(fakeStudentLoginPage))
	mux.HandleFunc("/Student.aspx", func(w http.ResponseWriter, r *http.Request) {
		portal.mutex.Lock()
		portal.userID = r.URL.Query().Get("txtUserId")
		portal.password = r.URL.Query().Get("txtPwd")
		portal.mutex.Unlock()
		serve(fakeStudentPage)(w, r)
	})
	mux.HandleFunc("/Semwise.aspx", serve(fakeSemwisePage()))
	mux.HandleFunc("/Results.aspx", func(w http.ResponseWriter, r *http.Request) {
		portal.mutex.Lock()
		portal.semesters = append(portal.semesters, r.URL.Query().Get("sem"))
		portal.mutex.Unlock()
		serve(string(results))(w, r)
	})
	mux.HandleFunc("/fonts/", func(w http.ResponseWriter, r *http.Request) {
		portal.fontHits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	portal.server = httptest.NewServer(mux)
	t.Cleanup(portal.server.Close)
	return portal
}

func TestRodBrowserFetch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	bin, found := launcher.LookPath()
	if !found {
		t.Skip("no chrome binary found")
	}

	portal := newFakePortal(t)
	tel := &telemetry.RecordingAPI{}
	cfg := Config{
		LoginURL: portal.server.URL + "/Login.aspx",
		Bin:      bin,
	}
	navigator := NewNavigator(NewRodBrowser(cfg, tel), cfg, WithCustomTelemetryAPI(tel))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	capture, err := navigator.Fetch(ctx, "22R91A0501", semester.YearTwoSemTwo)
	require.NoError(t, err)

	require.Equal(t, "RAVI KUMAR", capture.StudentName)
	require.Equal(t, "8.12", capture.CGPA)
	require.Equal(t, 5, capture.Grades.Count())
	require.Equal(t, 6.79, capture.SGPA)
	require.True(t, bytes.HasPrefix(capture.Screenshot, []byte("\x89PNG")))

	portal.mutex.Lock()
	defer portal.mutex.Unlock()
	require.Equal(t, "22R91A0501", portal.userID)
	require.Equal(t, "22R91A0501", portal.password)
	require.Equal(t, []string{"4"}, portal.semesters)
	require.Zero(t, portal.fontHits.Load())
	require.Empty(t, tel.Reports("broken"))
}
