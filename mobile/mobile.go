// Package mobile is the gomobile binding: an app embeds the local server and
// points a web view at it.
package mobile

import (
	"net/http"

	"github.com/sirupsen/logrus"

	httpserver "shogi/internal/server/http"
)

func newServer(webDir string, port string) *http.Server {
	return &http.Server{
		Addr:    "127.0.0.1:" + port,
		Handler: httpserver.NewRouter(httpserver.NewHandler(), webDir),
	}
}

// StartServer starts the local HTTP server in the background.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) {
	srv := newServer(webDir, port)
	// the caller is the UI thread
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logrus.Errorf("server error: %v", err)
		}
	}()
}
