package main

import "github.com/datainventdev-eng/hr-management/internal/app/server"

func main() {
	server.Run()
}
