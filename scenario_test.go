package mockhttp

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// scenarioFixtures describes table-driven dispatch scenarios in YAML, the
// way fixture-heavy test suites in the corpus keep request/response
// tables out of Go source. Each scenario mounts one mock and issues one
// request against it.
const scenarioFixtures = `
scenarios:
  - name: exact path match returns configured body
    path: /status
    status: 200
    body: ok
    requestPath: /status
    wantStatus: 200
    wantBody: ok
  - name: mismatched path falls through to 404
    path: /status
    status: 200
    body: ok
    requestPath: /other
    wantStatus: 404
    wantBody: ""
`

type dispatchScenario struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Status      int    `yaml:"status"`
	Body        string `yaml:"body"`
	RequestPath string `yaml:"requestPath"`
	WantStatus  int    `yaml:"wantStatus"`
	WantBody    string `yaml:"wantBody"`
}

type scenarioFile struct {
	Scenarios []dispatchScenario `yaml:"scenarios"`
}

func TestServer_DispatchScenariosFromFixture(t *testing.T) {
	t.Parallel()

	var file scenarioFile
	require.NoError(t, yaml.Unmarshal([]byte(scenarioFixtures), &file))
	require.NotEmpty(t, file.Scenarios)

	for _, sc := range file.Scenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			t.Parallel()

			s, err := StartServer()
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })

			path := sc.Path
			m, err := NewMock().
				Given(NewMatcher("path", func(r *Request) bool { return r.Path() == path })).
				RespondWith(RespondWith(ResponseSpec{StatusCode: sc.Status, Body: []byte(sc.Body)})).
				Build()
			require.NoError(t, err)
			s.Register(m)

			resp, err := http.Get(s.URI() + sc.RequestPath)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, sc.WantStatus, resp.StatusCode)
			require.Equal(t, sc.WantBody, string(body))
		})
	}
}
