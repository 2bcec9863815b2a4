package analyTool

import (
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
)

type StepMap map[skiplist.V]int

// FindStep 計算找到指定 value 的總步數和各層步數
func FindStep(sl skiplist.Analyable, value skiplist.V) (step int, level []int) {
	cur := sl.GetHead()
	if cur == nil {
		return 0, []int{}
	}

	totalSteps := 0

	_, maxLevel := sl.GetMaxStats()
	stepsPerLevel := make([]int, maxLevel+1)

	// 從最高層開始搜尋
	for h := maxLevel; h >= 0; h-- {
		levelSteps := 0

		for cur != nil {
			nextNode := cur.GetNextAt(int32(h))
			if nextNode == nil || nextNode.GetValue() >= value {
				break
			}
			cur = nextNode
			levelSteps++
		}

		// 找到目標即記錄步數並返回
		if cur != nil {
			nextNode := cur.GetNextAt(int32(h))
			if nextNode != nil && nextNode.GetValue() == value {
				levelSteps++ // 加上最後一步
				stepsPerLevel[h] = levelSteps
				totalSteps += levelSteps

				return totalSteps, stepsPerLevel[:maxLevel+1]
			}
		}

		stepsPerLevel[h] = levelSteps
		totalSteps += levelSteps + 1 // 加上向下移動
	}

	return totalSteps, stepsPerLevel[:maxLevel+1]
}

// AnalyzeStep 根據 map 提供的 value 出現機率計算平均搜尋步數
func AnalyzeStep(sl skiplist.Analyable, dist map[skiplist.V]float64) (float64, StepMap) {
	if len(dist) == 0 {
		return 0.0, nil
	}

	step := StepMap{}

	var totalExpectedSteps float64
	var totalProbability float64

	// 遞迴走訪所有節點，若存在於分布中則計算期望步數
	var dfs func(node skiplist.Nodelike, level int, steps int)
	dfs = func(node skiplist.Nodelike, level int, steps int) {
		if node == nil {
			return
		}

		if node.GetLevel() == int32(level) { // 初次到來，計算期望步數
			if p, ok := dist[node.GetValue()]; ok {
				totalExpectedSteps += float64(steps) * p
				totalProbability += p
				step[node.GetValue()] = steps
			}
		}
		if level > 0 { // 下降也算一步
			dfs(node, level-1, steps+1)
		}

		nextNode := node.GetNextAt(int32(level))
		if nextNode != nil && nextNode.GetLevel() == int32(level) {
			// 若下一個節點高度較高，則不屬於本次走訪
			dfs(nextNode, level, steps+1)
		}
	}

	_, maxLevel := sl.GetMaxStats()
	head := sl.GetHead()
	if head != nil {
		dfs(head, maxLevel, 0)
	}

	if totalProbability > 0 {
		return totalExpectedSteps / totalProbability, step
	}
	return 0.0, step
}

// PrintSkipList 打印 skip list 的結構
func PrintSkipList(sl skiplist.Analyable, maxLevel, maxNodes int) {
	_, actualMaxLevel := sl.GetMaxStats()
	maxLevel = min(maxLevel, actualMaxLevel)
	output := make([]string, maxLevel+1)

	for i := maxLevel; i >= 0; i-- {
		output[i] = fmt.Sprintf("level %d : HEAD ->", i)
	}

	head := sl.GetHead()
	if head == nil {
		fmt.Println("skip list 為空")
		return
	}

	node := head.GetNextAt(0)
	count := 0
	for ; node != nil && count < maxNodes; count++ {
		lv := int(node.GetLevel())
		for i := range output {
			if i <= lv {
				output[i] += fmt.Sprintf("%3d ->", node.GetValue())
			} else {
				output[i] += "    ->"
			}
		}
		node = node.GetNextAt(0)
	}

	for i := maxLevel; i >= 0; i-- {
		fmt.Println(output[i])
	}
}

// PrintSkipListToCSV 將 skip list 的結構輸出到 CSV
func PrintSkipListToCSV(sl skiplist.Analyable, maxLevel, maxNodes int, writer *csv.Writer) {
	_, actualMaxLevel := sl.GetMaxStats()
	maxLevel = min(maxLevel, actualMaxLevel)

	// 依第 0 層收集所有 value 與高度
	var allValues []skiplist.V
	var heights []int
	node := sl.GetHead().GetNextAt(0)
	for node != nil {
		allValues = append(allValues, node.GetValue())
		heights = append(heights, int(node.GetLevel()))
		node = node.GetNextAt(0)
	}

	if len(allValues) > maxNodes {
		allValues = allValues[:maxNodes]
		heights = heights[:maxNodes]
	}

	for i := maxLevel; i >= 0; i-- {
		row := []string{fmt.Sprintf("level %d", i)}
		for j := range allValues {
			if heights[j] >= i {
				row = append(row, fmt.Sprintf("%d", allValues[j]))
			} else {
				row = append(row, "")
			}
		}
		writer.Write(row)
	}
}

// PrintLink 打印 skip list 的連結結構
func PrintLink(sl skiplist.Analyable, maxLevel, maxNodes int) {
	head := sl.GetHead()
	if head == nil {
		fmt.Println("skip list 為空")
		return
	}

	_, actualMaxLevel := sl.GetMaxStats()
	maxLevel = min(maxLevel, actualMaxLevel)

	for i := maxLevel; i >= 0; i-- {
		fmt.Printf("level %d : HEAD ->", i)
		node := head.GetNextAt(int32(i))
		count := 0
		for node != nil && count < maxNodes {
			fmt.Printf("%d ->", node.GetValue())
			node = node.GetNextAt(int32(i))
			count++
		}
		fmt.Println()
	}
}

// CheckStruct 檢查 skip list 的結構是否正確：
// 第 0 層嚴格遞增且無重複、每一層的鏈結恰為第 0 層中高度足夠節點的子序列、
// 節點高度不超過 list 層級
func CheckStruct(sl skiplist.Analyable) bool {
	_, maxLevel := sl.GetMaxStats()
	list := make([]skiplist.Nodelike, maxLevel+1)

	head := sl.GetHead()
	if head == nil {
		return true
	}

	for i := range list {
		list[i] = head
	}

	node := head.GetNextAt(0)
	if node == nil {
		return true
	}

	first := true
	var prev skiplist.V
	for node != nil {
		if !first && node.GetValue() <= prev {
			fmt.Printf("level 0 not strictly increasing: %d after %d\n", node.GetValue(), prev)
			return false
		}
		first = false
		prev = node.GetValue()

		nodelv := node.GetLevel()
		if nodelv > int32(maxLevel) {
			fmt.Printf("nodelv > level, nodelv: %d, level: %d\n", nodelv, maxLevel)
			return false
		}
		for i := 1; i <= int(nodelv); i++ {
			nextAtLevel := list[i].GetNextAt(int32(i))
			if nextAtLevel != node {
				fmt.Printf("list[%d] != node, node: %d\n", i, node.GetValue())
				return false
			}
			list[i] = node
		}
		node = node.GetNextAt(0)
	}

	// 走完後各層不應再有多餘的後繼
	for i := 1; i <= maxLevel; i++ {
		if extra := list[i].GetNextAt(int32(i)); extra != nil {
			fmt.Printf("level %d has unreachable node: %d\n", i, extra.GetValue())
			return false
		}
	}

	return true
}

// CountLevel 計算每層的節點數量並印出統計
func CountLevel(sl skiplist.Analyable) []int {
	size, maxLevel := sl.GetMaxStats()
	levelCounts := make([]int, maxLevel+1)

	head := sl.GetHead()
	current := head.GetNextAt(0) // 從第一個實際節點開始（跳過 head）

	for current != nil {
		nodeLevel := current.GetLevel()
		// 節點存在於 level 0 到 nodeLevel 的所有層
		for i := int32(0); i <= nodeLevel; i++ {
			if int(i) < len(levelCounts) {
				levelCounts[i]++
			}
		}
		current = current.GetNextAt(0)
	}

	fmt.Printf("層級節點統計 (總節點數: %d, 最高層級: %d):\n", size, maxLevel)
	for i := maxLevel; i >= 0; i-- {
		fmt.Printf("level %2d: %d 個節點\n", i, levelCounts[i])
	}

	return levelCounts
}

func (mp StepMap) Print() {
	out := make([][2]int, 0)
	for k, v := range mp {
		out = append(out, [2]int{int(k), v})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})

	for _, v := range out {
		fmt.Printf("%2d  ", v[0])
	}
	fmt.Println()
	for _, v := range out {
		fmt.Printf("%2d  ", v[1])
	}
	fmt.Println()
}
