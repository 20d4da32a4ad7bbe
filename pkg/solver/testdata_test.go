package solver

// Example inputs from the puzzle statements, keyed by solver name.
var examples = map[string]string{
	"calories": `1000
2000
3000

4000

5000
6000

7000
8000
9000

10000
`,
	"strategy": "A Y\nB X\nC Z\n",
	"rucksack": `vJrwpWtwJgWrhcsFMMfFFhFp
jqHRNqRjqzjGDLGLrsFMfFZSrLrFZsSL
PmmdzqPrVvPwwTWBwg
wMqvLMZHhHMvwLHjbvcjnnSBnvTQFn
ttgJtRGJQctTZtZT
CrZsJsPPZsGzwwsLwLmpwMDw
`,
	"sections": `2-4,6-8
2-3,4-5
5-7,7-9
2-8,3-7
6-6,4-6
2-6,4-8
`,
	"crates": `    [D]
[N] [C]
[Z] [M] [P]
 1   2   3

move 1 from 2 to 1
move 3 from 1 to 3
move 2 from 2 to 1
move 1 from 1 to 2
`,
	"signal": "mjqjpqmgbljsphdztnvjfqwrcgsmlb\n",
	"filesystem": `$ cd /
$ ls
dir a
14848514 b.txt
8504156 c.dat
dir d
$ cd a
$ ls
dir e
29116 f
2557 g
62596 h.lst
$ cd e
$ ls
584 i
$ cd ..
$ cd ..
$ cd d
$ ls
4060174 j
8033020 d.log
5626152 d.ext
7214296 k
`,
}

// expected holds the part 1 and part 2 answers for each example.
var expected = map[string][2]string{
	"calories":   {"24000", "45000"},
	"strategy":   {"15", "12"},
	"rucksack":   {"157", "70"},
	"sections":   {"2", "4"},
	"crates":     {"CMZ", "MCD"},
	"signal":     {"7", "19"},
	"filesystem": {"95437", "24933642"},
}
