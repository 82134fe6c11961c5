/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/led-dino/playacamp/cmd/pcadmin/cmd"

func main() {
	cmd.Execute()
}
