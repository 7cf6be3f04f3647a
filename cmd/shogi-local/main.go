package main

import (
	"flag"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	httpserver "shogi/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	// headless hosts have no browser
	_ = cmd.Start()
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "./web", "directory with index.html / js / svg")
	noBrowser := flag.Bool("no-browser", false, "do not open a browser")
	flag.Parse()

	router := httpserver.NewRouter(httpserver.NewHandler(), *webDir)
	logrus.Infof("listening on %s, serving static from %s", *addr, *webDir)

	if !*noBrowser {
		// give the listener a moment to come up
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := http.ListenAndServe(*addr, router); err != nil {
		logrus.Fatal(err)
	}
}
