package wslconfig

// MemoryLimitFrom exposes the path-taking variant for tests.
var MemoryLimitFrom = memoryLimitFrom
