package main

import "workdesk/internal/app/server"

func main() {
	server.Run()
}
