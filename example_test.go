package mockhttp_test

import (
	"fmt"
	"io"
	"net/http"

	"github.com/oleksiy-marchenko/mockhttp"
	"github.com/oleksiy-marchenko/mockhttp/matchers"
)

func Example() {
	server, err := mockhttp.StartServer()
	if err != nil {
		panic(err)
	}
	defer server.Close()

	_, err = mockhttp.NewMock().
		Given(matchers.Method(http.MethodGet)).
		And(matchers.Path("/widgets/42")).
		RespondWith(mockhttp.RespondWith(mockhttp.ResponseSpec{
			StatusCode: http.StatusOK,
			Body:       []byte(`{"id":42,"name":"sprocket"}`),
		})).
		Mount(server)
	if err != nil {
		panic(err)
	}

	resp, err := http.Get(server.URI() + "/widgets/42")
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	fmt.Println(resp.StatusCode)
	fmt.Println(string(body))

	// Output:
	// 200
	// {"id":42,"name":"sprocket"}
}
