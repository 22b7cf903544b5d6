package preview

// Sample is shown by the preview command when no files are given.
const (
	SampleFile = "sample.go"

	SampleOld = `package main

import "fmt"

// greet prints a greeting.
func greet(name string) {
	fmt.Println("hello, " + name)
}

func main() {
	greet("world")
}
`

	SampleNew = `package main

import (
	"fmt"
	"os"
)

// greet prints a greeting.
func greet(name string, times int) {
	for i := 0; i < times; i++ {
		fmt.Printf("hello, %s\n", name)
	}
}

func main() {
	greet(os.Getenv("USER"), 3)
}
`
)
