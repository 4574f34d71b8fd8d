package main

import (
	movies "github.com/kerbaras/movies/cmd/movies"
)

func main() {
	movies.Execute()
}
