// invctl herramienta de operación: migraciones, reporte de reorden y tokens de desarrollo.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
