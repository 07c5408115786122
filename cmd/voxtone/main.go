// Command voxtone reads text aloud with Gemini voices.
package main

import "voxtone/voxtone"

func main() {
	voxtone.Run()
}
