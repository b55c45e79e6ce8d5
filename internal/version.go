package internal

// Version is the havara release version
const Version = "0.3.0"
