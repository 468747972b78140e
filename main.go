package main

import "rrt-planner/cmd"

func main() {
	cmd.Execute()
}
