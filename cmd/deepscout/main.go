// deepscout - Deep research tools over the Model Context Protocol.
package main

func main() {
	Execute()
}
