package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	static := flag.String("static", "", "Directory of static files to serve at / (disabled when empty)")
	flag.Parse()

	webServer := server.NewServer(*port, *static)

	log.Printf("Path Tracer Web Server")
	log.Printf("API available at http://localhost:%d/api/scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
