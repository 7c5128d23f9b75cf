package curriculum

// CoreTrackName is the sentinel track shown when no domain is selected.
const CoreTrackName = "Core C Roadmap"

// coreTopics is the default roadmap every learner starts with.
var coreTopics = []string{
	"C Setup: GCC, IDEs (VS Code, Code::Blocks), CLI Compilation",
	"Data Types and Variables",
	"Operators (Arithmetic, Logical, Bitwise)",
	"Control Flow (if, else, switch)",
	"Loops (for, while, do-while)",
	"Functions and Recursion",
	"Arrays and Strings",
	"Pointers and Dynamic Memory",
	"Structures and Unions",
	"File Handling",
	"Header Files and Modular C",
	"Makefile and Compilation Units",
	"Preprocessor Directives",
	"Command Line Arguments",
	"Debugging with GDB and Valgrind",
}

// domainOrder fixes the menu order of the built-in domain tracks.
var domainOrder = []string{
	"Systems Programming",
	"Embedded Systems",
	"Operating Systems",
	"Reverse Engineering",
	"Game Development",
	"DSA in C",
}

var domainTopics = map[string][]string{
	"Systems Programming": {
		"Processes and Forking",
		"Signals and Pipes",
		"Sockets (TCP/UDP Basics)",
		"Multithreading with pthreads",
		"Daemon Processes and IPC",
	},
	"Embedded Systems": {
		"Bitwise Operations for Port Manipulation",
		"Microcontroller Programming (e.g., Arduino)",
		"Interrupt Handling",
		"Timer and Delay Logic",
		"Serial Communication (UART)",
	},
	"Operating Systems": {
		"Process Scheduling Concepts",
		"Virtual Memory and Paging",
		"Writing a Shell",
		"Lexers and Parsers (Flex & Bison)",
		"Toy Compiler and File System Simulator",
	},
	"Reverse Engineering": {
		"Buffer Overflow and Stack Smashing",
		"Format String Vulnerabilities",
		"Binary Exploitation with GDB",
		"Shellcode Basics",
	},
	"Game Development": {
		"Graphics with SDL2",
		"Game Loops and Timers",
		"Collision Detection",
		"2D Game Physics",
		"Sound Integration (SDL_Mixer)",
	},
	"DSA in C": {
		"Linked Lists and Trees",
		"Stacks and Queues",
		"Graphs (DFS, BFS)",
		"Sorting and Searching Algorithms",
		"Hashing and Map Implementation",
	},
}

// Catalog holds the built-in tracks plus any custom tracks loaded at startup.
// It is read-only after construction.
type Catalog struct {
	customOrder  []string
	customTopics map[string][]string
}

// NewCatalog returns a catalog containing only the built-in tracks.
func NewCatalog() *Catalog {
	return &Catalog{customTopics: make(map[string][]string)}
}

// TrackNames returns all track names in menu order: the core sentinel
// first, then the built-in domains, then custom tracks.
func (c *Catalog) TrackNames() []string {
	names := make([]string, 0, 1+len(domainOrder)+len(c.customOrder))
	names = append(names, CoreTrackName)
	names = append(names, domainOrder...)
	names = append(names, c.customOrder...)
	return names
}

// TopicsFor returns the ordered topic list for a track name.
// The core sentinel yields the core roadmap. Unknown names yield nil.
func (c *Catalog) TopicsFor(name string) []string {
	if name == CoreTrackName {
		return clone(coreTopics)
	}
	if topics, ok := domainTopics[name]; ok {
		return clone(topics)
	}
	if topics, ok := c.customTopics[name]; ok {
		return clone(topics)
	}
	return nil
}

// Has reports whether a track with the given name exists.
func (c *Catalog) Has(name string) bool {
	return c.TopicsFor(name) != nil
}

func clone(topics []string) []string {
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}
