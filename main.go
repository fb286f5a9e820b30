/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/gameforge/cmd"
	"github.com/josephgoksu/gameforge/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
