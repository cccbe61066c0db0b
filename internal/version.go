package internal

// Version is the current tableproof release.
const Version = "0.1.0"
