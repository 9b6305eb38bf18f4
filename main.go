/*
Copyright © 2023 Glossopoeia
*/
package main

import "github.com/glossopoeia/settype/cmd"

func main() {
	cmd.Execute()
}
