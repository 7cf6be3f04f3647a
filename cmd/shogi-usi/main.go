package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/sirupsen/logrus"

	"shogi/internal/usi"
)

var serverMode = flag.Bool("s", false, "open server mode")
var port = flag.Int("p", 1234, "server mode listening port")
var logFile = flag.String("log", "shogi.log", "log file in stdio mode")
var logLevel = flag.String("level", "info", "log level")

func main() {
	flag.Parse()
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	if *serverMode {
		networkEngine(*port)
		return
	}
	// stdout belongs to the protocol
	file, err := os.Create(*logFile)
	if err == nil {
		logrus.SetOutput(file)
		defer file.Close()
	} else {
		logrus.SetOutput(os.Stderr)
	}
	if err := usi.Serve(os.Stdin, os.Stdout); err != nil {
		logrus.Errorf("read stdin: %v", err)
	}
}

// networkEngine speaks USI over TCP, one engine per connection.
func networkEngine(port int) {
	listen, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		logrus.Errorf("listen failed, err=%v", err)
		return
	}
	logrus.Infof("start listening: %v", listen.Addr())
	for {
		conn, err := listen.Accept()
		if err != nil {
			logrus.Errorf("accept failed, err=%v", err)
			return
		}
		logrus.Infof("accept connection: %v", conn.RemoteAddr())
		go func(c net.Conn) {
			defer c.Close()
			if err := usi.Serve(c, c); err != nil {
				logrus.Warnf("connection %v: %v", c.RemoteAddr(), err)
			}
		}(conn)
	}
}
