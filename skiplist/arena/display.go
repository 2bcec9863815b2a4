package arena

import (
	"fmt"
	"io"
	"strings"
)

// Display 將各層鏈結的對齊視圖寫入 w，唯讀且容忍空 list
func (sl *ArenaSkipList) Display(w io.Writer) {
	fmt.Fprintf(w, "skip list (level %d, %d nodes)\n", sl.level, len(sl.nodes))
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if sl.IsEmpty() {
		fmt.Fprintln(w, "empty skip list")
		fmt.Fprintln(w, strings.Repeat("=", 60))
		return
	}

	// 依第 0 層決定每個節點的欄位位置，讓高層節點對齊
	order := make([]int, 0, len(sl.nodes))
	for idx := sl.headForward[0]; idx != nilRef; idx = sl.nodes[idx].forward[0] {
		order = append(order, idx)
	}

	for level := sl.level; level >= 0; level-- {
		fmt.Fprintf(w, "level %2d : HEAD", level)
		for _, idx := range order {
			if len(sl.nodes[idx].forward) > level {
				fmt.Fprintf(w, " -> %3d", sl.nodes[idx].value)
			} else {
				fmt.Fprint(w, " ------")
			}
		}
		fmt.Fprintln(w, " -> NIL")
	}
	fmt.Fprintln(w, strings.Repeat("=", 60))
}

// DisplayDetailed 額外輸出每個節點的原始高度與 forward 索引表，
// 以及 head 的 forward 表
func (sl *ArenaSkipList) DisplayDetailed(w io.Writer) {
	fmt.Fprintln(w, "detailed skip list dump")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "total nodes: %d\n", len(sl.nodes))
	fmt.Fprintf(w, "current max level: %d\n", sl.level)

	if sl.IsEmpty() {
		fmt.Fprintln(w, "list is empty")
		fmt.Fprintln(w, strings.Repeat("=", 60))
		return
	}

	fmt.Fprintln(w, "node details:")
	for idx, nd := range sl.nodes {
		fmt.Fprintf(w, "node %d: value=%d, height=%d, forward=%v\n",
			idx, nd.value, len(nd.forward)-1, nd.forward)
	}
	fmt.Fprintf(w, "head forward: %v\n", sl.headForward)
	fmt.Fprintln(w, strings.Repeat("=", 60))
}
