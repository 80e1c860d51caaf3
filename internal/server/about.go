package server

// DefaultAbout is the landing page introduction when none is configured.
var DefaultAbout = `I like building software that is useful and a little bit fun, and I am always
curious about how things work behind the scenes. Most of these projects started as a
small idea and turned into a chance to learn something new: a different language,
an unfamiliar tool, or a problem that would not let go.`
